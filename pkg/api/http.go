package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	"github.com/lexalang/lexa-go/pkg/logger"
	"github.com/lexalang/lexa-go/pkg/version"
)

const (
	// DefaultBaseURL is the production endpoint of the pipeline service.
	DefaultBaseURL = "https://api.lexa.dev"

	pipelinePath   = "/api/v1/pipeline"
	asyncTasksPath = "/api/v1/pipeline/async/tasks"
)

// instanceID distinguishes SDK instances in the User-Agent, for service-side
// diagnostics.
var instanceID = uuid.NewString()

// HTTPOptions configures the HTTP transport. The zero value of every field
// except APIKey gets a sensible default.
type HTTPOptions struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL overrides the service endpoint, e.g. for a staging cluster.
	BaseURL string
	// Client overrides the underlying HTTP client.
	Client *http.Client
	// RetryAttempts bounds retries of transient failures (429, 5xx, network).
	RetryAttempts uint
	// RetryInitialDelay is the first backoff delay.
	RetryInitialDelay time.Duration
	// RetryMaxDelay caps the backoff delay.
	RetryMaxDelay time.Duration
	// AsyncThreshold is the encoded payload size in bytes above which file
	// uploads are routed through the long-running job path.
	AsyncThreshold int
	// PollInterval is the delay between job status polls.
	PollInterval time.Duration
}

func (o HTTPOptions) withDefaults() HTTPOptions {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.Client == nil {
		o.Client = &http.Client{Timeout: 10 * time.Minute}
	}
	if o.RetryAttempts == 0 {
		o.RetryAttempts = 3
	}
	if o.RetryInitialDelay == 0 {
		o.RetryInitialDelay = 500 * time.Millisecond
	}
	if o.RetryMaxDelay == 0 {
		o.RetryMaxDelay = 10 * time.Second
	}
	if o.AsyncThreshold == 0 {
		o.AsyncThreshold = 1 << 20
	}
	if o.PollInterval == 0 {
		o.PollInterval = time.Second
	}
	return o
}

// HTTPTransport talks to the hosted pipeline service over HTTPS. It owns
// authentication, retry policy and the sync-versus-job routing decision for
// file uploads; the pipeline core stays unaware of all three.
type HTTPTransport struct {
	opts HTTPOptions
}

var _ AsyncTransport = (*HTTPTransport)(nil)

// NewHTTPTransport builds a production transport from options.
func NewHTTPTransport(opts HTTPOptions) *HTTPTransport {
	return &HTTPTransport{opts: opts.withDefaults()}
}

// Send executes a pipeline request. Small payloads use the synchronous
// endpoint; file uploads above the configured threshold are submitted as jobs
// and polled to completion, so callers see a single blocking call either way.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	if req.FileUpload() && len(req.Text) > t.opts.AsyncThreshold {
		handle, err := t.Submit(ctx, req)
		if err != nil {
			return nil, err
		}
		return Await(ctx, t, handle, t.opts.PollInterval)
	}

	var resp Response
	if err := t.do(ctx, http.MethodPost, pipelinePath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Submit uploads a request to the async task endpoint and returns the job handle.
func (t *HTTPTransport) Submit(ctx context.Context, req *Request) (JobHandle, error) {
	var body struct {
		TaskID string `json:"task_id"`
	}
	if err := t.do(ctx, http.MethodPost, asyncTasksPath, req, &body); err != nil {
		return JobHandle{}, err
	}
	if body.TaskID == "" {
		return JobHandle{}, lexaerr.MalformedResponsef("async submission returned no task id")
	}
	logger.G(ctx).WithField("task_id", body.TaskID).Debug("pipeline job submitted")
	return JobHandle{TaskID: body.TaskID}, nil
}

// Poll reports the current status of a job, with the response attached once
// the job has completed.
func (t *HTTPTransport) Poll(ctx context.Context, handle JobHandle) (*PollResult, error) {
	var body struct {
		Status string    `json:"status"`
		Result *Response `json:"result"`
	}
	if err := t.do(ctx, http.MethodGet, asyncTasksPath+"/"+handle.TaskID, nil, &body); err != nil {
		return nil, err
	}
	if body.Status == "" {
		return nil, lexaerr.MalformedResponsef("task %s: status missing from poll response", handle.TaskID)
	}
	return &PollResult{Status: body.Status, Response: body.Result}, nil
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, payload, out any) error {
	if t.opts.APIKey == "" {
		return lexaerr.MissingAPIKey()
	}

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return errors.Wrap(err, "encoding request body")
		}
	}

	return retry.Do(
		func() error {
			return t.doOnce(ctx, method, path, body, out)
		},
		retry.RetryIf(isRetryable),
		retry.Attempts(t.opts.RetryAttempts),
		retry.Delay(t.opts.RetryInitialDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.MaxDelay(t.opts.RetryMaxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithFields(map[string]any{
				"attempt": n + 1,
				"path":    path,
			}).Warn("retrying pipeline API call")
		}),
	)
}

func (t *HTTPTransport) doOnce(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.opts.BaseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("api-key", t.opts.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("lexa-go/%s/%s", version.Get().Version, instanceID))

	resp, err := t.opts.Client.Do(req)
	if err != nil {
		return &lexaerr.TransportError{Kind: lexaerr.KindUnknown, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return lexaerr.MalformedResponsef("decoding response body: %v", err)
	}
	return nil
}

// errorFromResponse maps an unsuccessful status to the error taxonomy,
// picking up the service's structured error body when present.
func errorFromResponse(resp *http.Response) error {
	message := http.StatusText(resp.StatusCode)
	var details string
	var code int

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		var body struct {
			StatusCode int    `json:"status_code"`
			Message    string `json:"message"`
			Details    string `json:"details"`
		}
		if json.Unmarshal(raw, &body) == nil && body.Message != "" {
			message = body.Message
			details = body.Details
			code = body.StatusCode
		}
	}

	err = lexaerr.FromStatus(resp.StatusCode, message)
	var trErr *lexaerr.TransportError
	if errors.As(err, &trErr) {
		trErr.Details = details
		trErr.Code = code
	}
	return err
}

// isRetryable allows retries for rate limiting, server errors and network
// failures; client-side mistakes (bad payload, bad key) fail immediately.
func isRetryable(err error) bool {
	var trErr *lexaerr.TransportError
	if !errors.As(err, &trErr) {
		return false
	}
	if trErr.StatusCode == 0 {
		return trErr.Kind == lexaerr.KindUnknown
	}
	return trErr.StatusCode == http.StatusTooManyRequests || trErr.StatusCode >= 500
}
