package protocol

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("square", func(fl validator.FieldLevel) bool {
			return IsSquare(fl.Field().String())
		})
		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			return IsColor(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks the struct tags of a decoded payload.
func Validate(payload any) error {
	return validatorInstance().Struct(payload)
}

// IsSquare reports whether s is a two-character algebraic square, a-h then
// 1-8, in either case.
func IsSquare(s string) bool {
	if len(s) != 2 {
		return false
	}
	file := s[0] | 0x20 // ASCII lowercase
	rank := s[1]
	return file >= 'a' && file <= 'h' && rank >= '1' && rank <= '8'
}

// IsColor reports whether s names a side ("white" or "black").
func IsColor(s string) bool {
	switch strings.ToLower(s) {
	case "white", "black":
		return true
	}
	return false
}
