package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/forms"
	"github.com/zvonbot/zvonocli/internal/types"
)

// resolveOutgoing is replaced in tests
var resolveOutgoing = ResolveOutgoing

// SendOptions is the raw input of the sms and voice commands
type SendOptions struct {
	Endpoint types.Endpoint // EndpointSendSMS or EndpointSendVoice
	Phone    string
	Text     string
	RecordID string // voice only
	From     string // outgoing phone, or PickFrom
	Sample   bool   // fill blank fields from the test data
}

// BuildSend validates the input and returns the payload for opts.Endpoint.
// --from is resolved only once the input is valid: "pick" calls get-phones,
// and invalid input must not reach the network.
func BuildSend(ctx context.Context, d *executor.Dispatcher, opts SendOptions) (any, error) {
	cfg := d.Config()
	controller, err := forms.NewController(cfg)
	if err != nil {
		return nil, err
	}

	invalid := func(err error) error {
		return fmt.Errorf("%s: %w", cfg.Messages.Error.Validation, err)
	}

	switch opts.Endpoint {
	case types.EndpointSendVoice:
		form := forms.VoiceForm{Phone: opts.Phone, Text: opts.Text, RecordID: opts.RecordID}
		if opts.Sample {
			sample := forms.NewVoiceForm(cfg.TestData)
			form.Phone = orDefault(form.Phone, sample.Phone)
			form.Text = orDefault(form.Text, sample.Text)
			form.RecordID = orDefault(form.RecordID, sample.RecordID)
		}
		req, err := controller.BuildVoice(form)
		if err != nil {
			return nil, invalid(err)
		}
		if req.OutgoingPhone, err = outgoing(ctx, d, opts.From); err != nil {
			return nil, err
		}
		return req, nil

	case types.EndpointSendSMS:
		form := forms.SMSForm{Phone: opts.Phone, Text: opts.Text}
		if opts.Sample {
			sample := forms.NewSMSForm(cfg.TestData)
			form.Phone = orDefault(form.Phone, sample.Phone)
			form.Text = orDefault(form.Text, sample.Text)
		}
		req, err := controller.BuildSMS(form)
		if err != nil {
			return nil, invalid(err)
		}
		if req.OutgoingPhone, err = outgoing(ctx, d, opts.From); err != nil {
			return nil, err
		}
		return req, nil
	}

	return nil, fmt.Errorf("%s does not send messages", opts.Endpoint)
}

func outgoing(ctx context.Context, d *executor.Dispatcher, from string) (string, error) {
	phone, err := resolveOutgoing(ctx, d, from)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(phone), nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
