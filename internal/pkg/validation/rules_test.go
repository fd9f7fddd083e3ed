package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contact struct {
	StudentID string `validate:"required,student_number"`
	Phone     string `validate:"phone"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	tests := []struct {
		name  string
		input contact
		ok    bool
	}{
		{"plain", contact{StudentID: "S001", Phone: "13800000000"}, true},
		{"formatted phone", contact{StudentID: "2024-001", Phone: "+86 (010) 1234-5678"}, true},
		{"empty phone", contact{StudentID: "S001"}, true},
		{"letters in phone", contact{StudentID: "S001", Phone: "ask parent"}, false},
		{"short phone", contact{StudentID: "S001", Phone: "12"}, false},
		{"space in student number", contact{StudentID: "S 001"}, false},
		{"tab in student number", contact{StudentID: "S\t001"}, false},
		{"unicode student number", contact{StudentID: "高一001"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterBindingRulesTwice(t *testing.T) {
	require.NoError(t, RegisterBindingRules())
	require.NoError(t, RegisterBindingRules())
}
