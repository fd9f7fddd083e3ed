package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnv overrides every field carrying an `env:"NAME"` tag whose variable is set,
// descending into nested structs. It returns the names it applied; a malformed value
// does not stop the walk, all of them are reported together.
func applyEnv(target interface{}) ([]string, error) {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("applyEnv needs a pointer to a struct, got %T", target)
	}

	var applied []string
	var errs []error
	walkEnvFields(val.Elem(), func(field reflect.Value, name, key string) {
		raw, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		if err := setFromString(field, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s (field %s): %w", key, name, err))
			return
		}
		applied = append(applied, key)
	})
	return applied, errors.Join(errs...)
}

func walkEnvFields(v reflect.Value, visit func(field reflect.Value, name, key string)) {
	typ := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), typ.Field(i)
		if field.Kind() == reflect.Struct && field.Type() != durationType {
			walkEnvFields(field, visit)
			continue
		}
		if key := meta.Tag.Get("env"); key != "" && field.CanSet() {
			visit(field, meta.Name, key)
		}
	}
}

func setFromString(field reflect.Value, value string) error {
	switch {
	case field.Type() == durationType:
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
	case field.Kind() == reflect.String:
		field.SetString(value)
	case field.CanInt():
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case field.Kind() == reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("unsupported kind %s", field.Kind())
	}
	return nil
}
