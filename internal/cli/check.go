package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/zvonbot/zvonocli/internal/executor"
	"github.com/zvonbot/zvonocli/internal/types"
	"golang.org/x/sync/errgroup"
)

// checkEndpoints are the read-only diagnostics run by Check, in print order
var checkEndpoints = []struct {
	control  executor.Control
	endpoint types.Endpoint
}{
	{executor.ControlTestKey, types.EndpointTestAPIKey},
	{executor.ControlProfile, types.EndpointProfile},
	{executor.ControlPhones, types.EndpointPhones},
	{executor.ControlRecords, types.EndpointRecords},
}

// CheckResult is the outcome of one diagnostic
type CheckResult struct {
	Endpoint types.Endpoint
	Status   int
	Duration int64
	Err      error
}

// Line renders the result as one status line
func (r CheckResult) Line() string {
	if r.Err != nil {
		return fmt.Sprintf("❌ %-13s %s", r.Endpoint.Name, describe(r.Err))
	}
	return fmt.Sprintf("✅ %-13s %d %s", r.Endpoint.Name, r.Status, executor.FormatDuration(r.Duration))
}

func describe(err error) string {
	var netErr *executor.NetworkError
	if errors.As(err, &netErr) {
		return netErr.Detail()
	}
	var apiErr *executor.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// Check runs the GET diagnostics concurrently and prints one line per endpoint.
// It returns an error when any of them failed.
func Check(ctx context.Context, d *executor.Dispatcher, w io.Writer) ([]CheckResult, error) {
	results := make([]CheckResult, len(checkEndpoints))

	var g errgroup.Group
	g.SetLimit(len(checkEndpoints))
	for i, ce := range checkEndpoints {
		g.Go(func() error {
			out, err := d.Dispatch(ctx, ce.control, ce.endpoint, nil, nil)
			res := CheckResult{Endpoint: ce.endpoint, Err: err}
			if out != nil && out.Result != nil {
				res.Status = out.Result.Status
				res.Duration = out.Result.Duration
			}
			results[i] = res
			return err
		})
	}
	firstErr := g.Wait()

	var failed int
	for _, res := range results {
		fmt.Fprintln(w, res.Line())
		if res.Err != nil {
			failed++
		}
	}

	if firstErr != nil {
		return results, fmt.Errorf("%d of %d checks failed: %w", failed, len(results), firstErr)
	}
	return results, nil
}
