package executor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/types"
)

// Kind classifies a rendering for styling
type Kind int

const (
	KindSuccess Kind = iota
	KindWarning
	KindError
	KindLoading
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Rendering is the text shown in the result area
type Rendering struct {
	Kind  Kind
	Title string
	Text  string
}

// String joins title and text the way the result area shows them
func (r Rendering) String() string {
	if r.Text == "" {
		return r.Title
	}
	return r.Title + "\n\n" + r.Text
}

// LoadingMessage returns the progress caption for an endpoint
func LoadingMessage(ep types.Endpoint, msgs config.Messages) Rendering {
	var title string
	switch ep {
	case types.EndpointTestAPIKey:
		title = msgs.Loading.APIKey
	case types.EndpointProfile:
		title = msgs.Loading.Profile
	case types.EndpointPhones:
		title = msgs.Loading.Phones
	case types.EndpointRecords:
		title = msgs.Loading.Records
	default:
		title = msgs.Loading.Sending
	}
	return Rendering{Kind: KindLoading, Title: title}
}

// Render turns the result of Do into user-facing text.
// A rejected response shows its own error text; transport and parse
// failures show the generic network caption with a categorized detail.
func Render(ep types.Endpoint, out *Outcome, err error, msgs config.Messages) Rendering {
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case errors.As(err, &apiErr):
		text := apiErr.Message
		if text == "" {
			text = msgs.Error.Unknown
		}
		return Rendering{Kind: KindError, Title: "❌ " + msgs.Error.API, Text: decodeUnicode(text)}
	case errors.As(err, &netErr):
		return Rendering{Kind: KindError, Title: "❌ " + msgs.Error.Network, Text: decodeUnicode(netErr.Detail())}
	case err != nil:
		return Rendering{Kind: KindError, Title: "❌ " + msgs.Error.Unknown, Text: decodeUnicode(err.Error())}
	case out == nil || out.Response == nil:
		return Rendering{Kind: KindError, Title: "❌ " + msgs.Error.Unknown}
	}

	resp := out.Response
	switch ep {
	case types.EndpointSendSMS, types.EndpointSendVoice:
		return success(msgs.Success.MessageSent, "Server response:\n"+prettyResponse(resp))
	case types.EndpointTestAPIKey:
		title := msgs.Success.APIKeyTest
		if resp.Message != "" {
			title = resp.Message
		}
		return success(title, "Server response:\n"+prettyJSON(resp.Data))
	case types.EndpointProfile:
		return success(msgs.Success.ProfileLoaded, "Server response:\n"+prettyJSON(resp.Data))
	case types.EndpointPhones:
		return success(msgs.Success.PhonesLoaded, "Server response:\n"+prettyJSON(resp.Data))
	case types.EndpointRecords:
		count := arrayLen(resp.Data)
		if count == 0 {
			return Rendering{
				Kind:  KindWarning,
				Title: "⚠️ The list of pre-moderated audio records is empty",
				Text: "Sending voice messages will require account moderation.\n\n" +
					"Try sending an SMS message instead.",
			}
		}
		return success(msgs.Success.RecordsLoaded,
			fmt.Sprintf("Available records: %d\n\nServer response:\n%s", count, prettyJSON(resp.Data)))
	default:
		return success(msgs.Success.MessageSent, "Server response:\n"+prettyResponse(resp))
	}
}

func success(title, text string) Rendering {
	return Rendering{Kind: KindSuccess, Title: "✅ " + title, Text: decodeUnicode(text)}
}

// arrayLen returns the element count of a JSON array, or 0 for anything else
func arrayLen(data json.RawMessage) int {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return 0
	}
	return len(items)
}

func prettyJSON(data json.RawMessage) string {
	if len(data) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

func prettyResponse(resp *types.APIResponse) string {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", *resp)
	}
	return string(data)
}

var unicodeEscape = regexp.MustCompile(`\\u([0-9a-fA-F]{4})`)

// decodeUnicode replaces literal \uXXXX sequences with the characters they name
func decodeUnicode(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}
	return unicodeEscape.ReplaceAllStringFunc(s, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(code))
	})
}
