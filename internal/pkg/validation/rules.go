package validation

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// PhonePattern accepts digits with the usual separators and an optional leading +
	PhonePattern = `^\+?[0-9][0-9\- ()]{2,31}$`

	// StudentNumberPattern forbids whitespace and control characters inside a student number
	StudentNumberPattern = `^[^\s\x00-\x1f]+$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Phone         *regexp.Regexp
	StudentNumber *regexp.Regexp
}{
	Phone:         regexp.MustCompile(PhonePattern),
	StudentNumber: regexp.MustCompile(StudentNumberPattern),
}

// Rule tags usable in `binding:"..."` struct tags
const (
	TagPhone         = "phone"
	TagStudentNumber = "student_number"
)

var registerOnce sync.Once

// RegisterBindingRules installs the custom rules on gin's validator. Safe to call more than once.
func RegisterBindingRules() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		err = Register(v)
	})
	return err
}

// Register installs the custom rules on v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagPhone, validatePattern(CompiledPatterns.Phone)); err != nil {
		return fmt.Errorf("register %s: %w", TagPhone, err)
	}
	if err := v.RegisterValidation(TagStudentNumber, validatePattern(CompiledPatterns.StudentNumber)); err != nil {
		return fmt.Errorf("register %s: %w", TagStudentNumber, err)
	}
	return nil
}

// validatePattern matches the trimmed field value; empty values pass, required handles those
func validatePattern(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" {
			return true
		}
		return re.MatchString(value)
	}
}
