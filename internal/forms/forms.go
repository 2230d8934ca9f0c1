package forms

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/phone"
	"github.com/zvonbot/zvonocli/internal/types"
)

// SMSForm is the raw input of the SMS panel
type SMSForm struct {
	Phone         string
	Text          string
	OutgoingPhone string
}

// VoiceForm is the raw input of the voice panel
type VoiceForm struct {
	Phone         string
	Text          string
	RecordID      string
	OutgoingPhone string
}

// NewSMSForm returns an SMS form pre-filled with sample data
func NewSMSForm(td config.TestData) SMSForm {
	return SMSForm{Phone: td.Phone, Text: td.SMSText}
}

// NewVoiceForm returns a voice form pre-filled with sample data
func NewVoiceForm(td config.TestData) VoiceForm {
	return VoiceForm{Phone: td.Phone, Text: td.VoiceText, RecordID: td.RecordID}
}

// Controller turns form input into request payloads
type Controller struct {
	phones   phone.Validator
	validate *validator.Validate
	rules    config.ValidationConfig
	testData config.TestData
}

// NewController builds a controller from the validation settings and sample data in cfg
func NewController(cfg config.Config) (*Controller, error) {
	pv, err := phone.NewValidator(cfg.Validation)
	if err != nil {
		return nil, err
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := phone.RegisterTag(v, pv); err != nil {
		return nil, fmt.Errorf("failed to register phone validation: %w", err)
	}

	return &Controller{
		phones:   pv,
		validate: v,
		rules:    cfg.Validation,
		testData: cfg.TestData,
	}, nil
}

// BuildSMS validates the form and returns the send-sms payload
func (c *Controller) BuildSMS(form SMSForm) (types.SMSRequest, error) {
	cleanPhone, err := c.checkCommon(form.Phone, form.Text)
	if err != nil {
		return types.SMSRequest{}, err
	}

	req := types.SMSRequest{
		Phone:         cleanPhone,
		Text:          form.Text,
		OutgoingPhone: strings.TrimSpace(form.OutgoingPhone),
	}
	if err := c.validate.Struct(req); err != nil {
		return types.SMSRequest{}, translate(err)
	}
	return req, nil
}

// BuildVoice validates the form and returns the send-voice payload
func (c *Controller) BuildVoice(form VoiceForm) (types.VoiceRequest, error) {
	cleanPhone, err := c.checkCommon(form.Phone, form.Text)
	if err != nil {
		return types.VoiceRequest{}, err
	}

	req := types.VoiceRequest{
		Phone:         cleanPhone,
		Text:          form.Text,
		OutgoingPhone: strings.TrimSpace(form.OutgoingPhone),
	}

	if raw := strings.TrimSpace(form.RecordID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return types.VoiceRequest{}, &ValidationError{
				Field:   "recordId",
				Tag:     "number",
				Message: fmt.Sprintf("Record ID must be a whole number, got %q", raw),
			}
		}
		req.RecordID = &id
	}

	if err := c.validate.Struct(req); err != nil {
		return types.VoiceRequest{}, translate(err)
	}
	return req, nil
}

// QuickSMS builds the test SMS from the sample data, sent from outgoing when set
func (c *Controller) QuickSMS(outgoing string) (types.SMSRequest, error) {
	return c.BuildSMS(SMSForm{
		Phone:         c.testData.Phone,
		Text:          c.testData.SMSText,
		OutgoingPhone: outgoing,
	})
}

// checkCommon validates phone and text and returns the cleaned phone
func (c *Controller) checkCommon(rawPhone, text string) (string, error) {
	cleanPhone := phone.Clean(rawPhone)
	if !c.phones.Validate(cleanPhone) {
		return "", &ValidationError{Field: "phone", Tag: phone.Tag, Message: phone.FormatHint}
	}

	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Field: "text", Tag: "required", Message: "Message text cannot be empty"}
	}

	length := utf8.RuneCountInString(text)
	if length < c.rules.MinTextLength {
		return "", &ValidationError{
			Field:   "text",
			Tag:     "min",
			Message: fmt.Sprintf("Message text must be at least %d characters", c.rules.MinTextLength),
		}
	}
	if c.rules.MaxTextLength > 0 && length > c.rules.MaxTextLength {
		return "", &ValidationError{
			Field:   "text",
			Tag:     "max",
			Message: fmt.Sprintf("Message text must be at most %d characters (got %d)", c.rules.MaxTextLength, length),
		}
	}
	return cleanPhone, nil
}
