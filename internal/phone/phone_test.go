package phone

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zvonbot/zvonocli/internal/config"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "spaced with plus", input: "+7 707 962 16 30", want: true},
		{name: "already clean", input: "77079621630", want: true},
		{name: "hyphens", input: "+7-707-962-16-30", want: true},
		{name: "parentheses", input: "+7 (707) 962-16-30", want: true},
		{name: "tabs and newlines", input: "7\t707\n9621630", want: true},
		{name: "no-break spaces", input: "+7\u00a0707\u202f962 16 30", want: true},
		{name: "vertical tab and ideographic space", input: "7\v707\u3000962\ufeff1630", want: true},
		{name: "too short", input: "123", want: false},
		{name: "wrong leading digit", input: "87079621630", want: false},
		{name: "too long", input: "770796216301", want: false},
		{name: "ten digits", input: "7707962163", want: false},
		{name: "letters", input: "7707962163a", want: false},
		{name: "dots are not separators", input: "7.707.962.16.30", want: false},
		{name: "empty", input: "", want: false},
		{name: "only separators", input: " -()+ ", want: false},
		{name: "unicode digits", input: "7７０７９６２１６３０", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.input))
		})
	}
}

// Validate is true iff the cleaned string is 11 ASCII digits starting with 7
func TestValidate_MatchesCleanedShape(t *testing.T) {
	inputs := []string{
		"+77079621630", "7 7", "(7)0000000000", "+++70000000000", "71234567890 ",
		"7123456789-0", "-", "7000000000O", "17000000000", "7 000 000 00 00 0",
	}
	for _, in := range inputs {
		cleaned := Clean(in)
		want := len(cleaned) == 11 && cleaned[0] == '7' && strings.Trim(cleaned, "0123456789") == ""
		assert.Equal(t, want, Validate(in), "input %q", in)
	}
}

func TestClean(t *testing.T) {
	assert.Equal(t, "77079621630", Clean("+7 (707) 962-16-30"))
	assert.Equal(t, "abc", Clean("a b-c"))
	assert.Equal(t, "", Clean(""))
}

func TestNewValidator(t *testing.T) {
	v, err := NewValidator(config.Default().Validation)
	require.NoError(t, err)
	assert.True(t, v.Validate("+7 707 962 16 30"))
	assert.False(t, v.Validate("87079621630"))

	custom, err := NewValidator(config.ValidationConfig{PhonePattern: `^8\d{10}$`})
	require.NoError(t, err)
	assert.True(t, custom.Validate("8 707 962 16 30"))
	assert.False(t, custom.Validate("77079621630"))

	_, err = NewValidator(config.ValidationConfig{PhonePattern: "(["})
	assert.Error(t, err)
}

func TestValidator_ZeroValueUsesDefault(t *testing.T) {
	var v Validator
	assert.True(t, v.Validate("77079621630"))
}

func TestRegisterTag(t *testing.T) {
	pv, err := NewValidator(config.Default().Validation)
	require.NoError(t, err)

	v := validator.New()
	require.NoError(t, RegisterTag(v, pv))

	type payload struct {
		Phone string `validate:"phone7"`
	}

	assert.NoError(t, v.Struct(payload{Phone: "77079621630"}))

	err = v.Struct(payload{Phone: "123"})
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, Tag, verrs[0].Tag())
}
