// Package phone normalizes and validates recipient phone numbers.
//
// A number is valid when, after removing whitespace (including Unicode
// spaces such as NBSP), hyphens, parentheses and plus signs, it is "7"
// followed by exactly ten digits.
package phone

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/zvonbot/zvonocli/internal/config"
)

// Tag is the struct tag registered by RegisterTag
const Tag = "phone7"

// FormatHint explains the accepted format to the user
const FormatHint = "Phone number must be in the format 7XXXXXXXXXX\n\nExamples:\n+7 707 962 16 30\n+7-707-962-16-30\n77079621630"

var (
	separators     = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}\-()+]`)
	defaultPattern = regexp.MustCompile(`^7\d{10}$`)
)

// Clean strips separators from a raw phone string
func Clean(raw string) string {
	return separators.ReplaceAllString(raw, "")
}

// Validate reports whether raw is a valid number with the default pattern
func Validate(raw string) bool {
	return defaultPattern.MatchString(Clean(raw))
}

// Validator checks numbers against a configured pattern
type Validator struct {
	pattern *regexp.Regexp
}

// NewValidator compiles the pattern from the validation settings
func NewValidator(cfg config.ValidationConfig) (Validator, error) {
	re, err := regexp.Compile(cfg.PhonePattern)
	if err != nil {
		return Validator{}, fmt.Errorf("invalid phone pattern %q: %w", cfg.PhonePattern, err)
	}
	return Validator{pattern: re}, nil
}

// Validate reports whether the cleaned value matches the pattern
func (v Validator) Validate(raw string) bool {
	re := v.pattern
	if re == nil {
		re = defaultPattern
	}
	return re.MatchString(Clean(raw))
}

// RegisterTag makes `validate:"phone7"` available on struct fields
func RegisterTag(v *validator.Validate, pv Validator) error {
	return v.RegisterValidation(Tag, func(fl validator.FieldLevel) bool {
		return pv.Validate(fl.Field().String())
	})
}
