package executor

import (
	"context"
	"fmt"

	"github.com/zvonbot/zvonocli/internal/types"
)

// Sink receives what a dispatch wants to show
type Sink interface {
	Progress(c Control, r Rendering)
	Result(c Control, r Rendering)
}

// Dispatch runs one request on behalf of a control.
// The control is held for the whole call and released on every exit path.
// A busy control returns ErrBusy without sending anything.
func (d *Dispatcher) Dispatch(ctx context.Context, c Control, ep types.Endpoint, payload any, sink Sink) (out *Outcome, err error) {
	token, ok := d.locks.Acquire(c)
	if !ok {
		d.logger.Debug("control busy, request dropped", "control", string(c), "endpoint", ep.Name)
		return nil, fmt.Errorf("%s: %w", c, ErrBusy)
	}
	defer token.Release()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch panicked", "control", string(c), "endpoint", ep.Name, "panic", r)
			err = fmt.Errorf("%s: unexpected failure: %v", ep.Name, r)
			out = nil
			if sink != nil {
				sink.Result(c, Render(ep, nil, err, d.cfg.Messages))
			}
		}
	}()

	if sink != nil {
		sink.Progress(c, LoadingMessage(ep, d.cfg.Messages))
	}

	out, err = d.Do(ctx, ep, payload)

	if sink != nil {
		sink.Result(c, Render(ep, out, err, d.cfg.Messages))
	}
	return out, err
}
