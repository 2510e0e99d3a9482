package api

import (
	"context"
	"time"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	"github.com/lexalang/lexa-go/pkg/logger"
)

// Job status values reported by the async task endpoint.
const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// JobHandle identifies a long-running pipeline job.
type JobHandle struct {
	TaskID string
}

// PollResult is one observation of a job: its status, and the response once
// the status is StatusCompleted.
type PollResult struct {
	Status   string
	Response *Response
}

// Transport submits encoded requests to the service. Implementations own the
// wire protocol, authentication and retry policy; failures surface as
// *lexaerr.TransportError and are passed through to the caller unchanged.
type Transport interface {
	// Send executes a request synchronously. Implementations may route
	// large file uploads through the job path internally; either way Send
	// returns the final response.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// AsyncTransport additionally exposes the long-running job path for callers
// that want to submit now and collect later.
type AsyncTransport interface {
	Transport
	// Submit uploads the request and returns a handle to the processing job.
	Submit(ctx context.Context, req *Request) (JobHandle, error)
	// Poll reports the job's current status without blocking.
	Poll(ctx context.Context, handle JobHandle) (*PollResult, error)
}

// Await polls a job until it completes, the service reports failure, or the
// context is cancelled.
func Await(ctx context.Context, tr AsyncTransport, handle JobHandle, interval time.Duration) (*Response, error) {
	if interval <= 0 {
		interval = time.Second
	}
	log := logger.G(ctx).WithField("task_id", handle.TaskID)
	start := time.Now()

	for {
		result, err := tr.Poll(ctx, handle)
		if err != nil {
			return nil, err
		}
		switch result.Status {
		case StatusCompleted:
			log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("job completed")
			return result.Response, nil
		case StatusFailed:
			return nil, &lexaerr.TransportError{
				Kind:    lexaerr.KindServer,
				Message: "processing job failed",
				Details: "task " + handle.TaskID,
			}
		}
		log.WithField("status", result.Status).Debug("job still processing")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
