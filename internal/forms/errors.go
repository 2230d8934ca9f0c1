package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/zvonbot/zvonocli/internal/phone"
)

// ValidationError is input rejected before any request is sent
type ValidationError struct {
	Field   string
	Tag     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// translate turns the first validator failure into a ValidationError
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "request", Tag: "unknown", Message: err.Error()}
	}

	fe := verrs[0]
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case phone.Tag:
		return &ValidationError{Field: field, Tag: fe.Tag(), Message: phone.FormatHint}
	case "required":
		return &ValidationError{Field: field, Tag: fe.Tag(), Message: fmt.Sprintf("%s is required", field)}
	case "gt":
		return &ValidationError{Field: field, Tag: fe.Tag(), Message: fmt.Sprintf("%s must be greater than %s", field, fe.Param())}
	default:
		return &ValidationError{Field: field, Tag: fe.Tag(), Message: fmt.Sprintf("%s failed %q validation", field, fe.Tag())}
	}
}

func fieldName(goName string) string {
	switch goName {
	case "Phone":
		return "phone"
	case "Text":
		return "text"
	case "RecordID":
		return "recordId"
	case "OutgoingPhone":
		return "outgoingPhone"
	default:
		return goName
	}
}
