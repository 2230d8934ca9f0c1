package executor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zvonbot/zvonocli/internal/config"
	"github.com/zvonbot/zvonocli/internal/types"
)

func newTestDispatcher(t *testing.T, handler http.HandlerFunc, opts ...Option) *Dispatcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg, err := config.Default().With(config.WithBaseURL(server.URL + "/api"))
	require.NoError(t, err)
	return New(cfg, opts...)
}

func TestDo_PostSendsJSON(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotRequestID string
	var gotBody map[string]any

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"success":true,"message":"queued","data":{"id":42}}`)
	})

	payload := types.SMSRequest{Phone: "77079621630", Text: "hello"}
	out, err := d.Do(context.Background(), types.EndpointSendSMS, payload)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/send-sms", gotPath)
	assert.Equal(t, ContentTypeJSON, gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, map[string]any{"phone": "77079621630", "text": "hello"}, gotBody)

	require.NotNil(t, out.Response)
	assert.True(t, out.Response.Success)
	assert.Equal(t, "queued", out.Response.Message)
	assert.JSONEq(t, `{"id":42}`, string(out.Response.Data))
	assert.Equal(t, gotRequestID, out.Result.RequestID)
	assert.Equal(t, http.StatusOK, out.Result.Status)
}

func TestDo_GetHasNoBody(t *testing.T) {
	var gotMethod, gotContentType string
	var gotLen int64

	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotLen = r.ContentLength
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	})

	_, err := d.Do(context.Background(), types.EndpointRecords, nil)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Empty(t, gotContentType)
	assert.Zero(t, gotLen)
}

func TestDo_ApplicationFailure(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"error":"Invalid phone"}`)
	})

	out, err := d.Do(context.Background(), types.EndpointSendVoice, types.VoiceRequest{Phone: "77079621630", Text: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid phone", apiErr.Message)
	assert.Equal(t, types.EndpointSendVoice, apiErr.Endpoint)

	var netErr *NetworkError
	assert.False(t, errors.As(err, &netErr))

	require.NotNil(t, out)
	require.NotNil(t, out.Response)
	assert.False(t, out.Response.Success)
}

func TestDo_NonJSONBody(t *testing.T) {
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html>Bad Gateway</html>")
	})

	out, err := d.Do(context.Background(), types.EndpointProfile, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, http.StatusBadGateway, netErr.Status)
	assert.Contains(t, netErr.Detail(), "Invalid response")

	require.NotNil(t, out)
	assert.Nil(t, out.Response)
	assert.Equal(t, "<html>Bad Gateway</html>", out.Result.Body)
}

func TestDo_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	cfg, err := config.Default().With(config.WithBaseURL(baseURL))
	require.NoError(t, err)
	d := New(cfg)

	out, err := d.Do(context.Background(), types.EndpointTestAPIKey, nil)
	assert.Nil(t, out)

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Zero(t, netErr.Status)
	assert.Contains(t, netErr.Detail(), "Connection refused")
}

func TestDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	defer close(release)

	_, err := d.Do(context.Background(), types.EndpointProfile, nil)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, netErr.Detail(), "Request timeout")
}

func TestURL(t *testing.T) {
	cfg, err := config.Default().With(config.WithBaseURL("http://api.example.com/api/"))
	require.NoError(t, err)
	d := New(cfg)
	assert.Equal(t, "http://api.example.com/api/get-phones", d.URL(types.EndpointPhones))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", FormatDuration(250))
	assert.Equal(t, "1.50s", FormatDuration(1500))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512B", FormatSize(512))
	assert.Equal(t, "2.00KB", FormatSize(2048))
	assert.Equal(t, "1.50MB", FormatSize(1572864))
}
