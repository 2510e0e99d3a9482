// Package pipeline composes skills into an ordered run plan and executes it
// against a transport. A pipeline is immutable after construction and safe to
// share across goroutines; the transport is supplied per call so one pipeline
// definition can run against different endpoints or fakes.
package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/lexalang/lexa-go/pkg/api"
	"github.com/lexalang/lexa-go/pkg/input"
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	"github.com/lexalang/lexa-go/pkg/logger"
	"github.com/lexalang/lexa-go/pkg/output"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Pipeline is an ordered sequence of skills. Order is semantically
// significant: skills placed after a generator run against its generated
// text, not the original input.
type Pipeline struct {
	steps    []nlptypes.Skill
	hasLocal bool
}

// New builds a pipeline from the given steps in submission order. An empty
// step list is a configuration error. Orderings the catalog documents as
// likely mistakes (an analyzer that expects generated text with no generator
// before it) are flagged with a warning, not rejected.
func New(steps ...nlptypes.Skill) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, lexaerr.Configf("pipeline requires at least one skill")
	}
	p := &Pipeline{steps: make([]nlptypes.Skill, len(steps))}
	copy(p.steps, steps)

	seenGenerator := false
	for i, step := range p.steps {
		if step.APIName == "" && !step.IsLocal() {
			return nil, lexaerr.Configf("step %d has neither an API name nor a local run function", i+1)
		}
		if step.NeedsGenerated && !seenGenerator {
			logger.L.WithFields(map[string]interface{}{
				"skill":    step.APIName,
				"position": i + 1,
			}).Warn("skill expects generated text but no generator precedes it")
		}
		if step.IsGenerator() {
			seenGenerator = true
		}
		if step.IsLocal() {
			p.hasLocal = true
		}
	}
	return p, nil
}

// Steps returns the pipeline's skills in submission order.
func (p *Pipeline) Steps() []nlptypes.Skill {
	out := make([]nlptypes.Skill, len(p.steps))
	copy(out, p.steps)
	return out
}

// RunText runs the pipeline over a plain-text document.
func (p *Pipeline) RunText(ctx context.Context, tr api.Transport, text string) (*output.Output, error) {
	return p.Run(ctx, tr, input.NewDocument(text))
}

// Run executes the pipeline over the input and returns the result tree.
// Skills with a local run function execute client-side; the remaining
// segments go through the transport, each segment seeing the text the
// preceding steps left it.
func (p *Pipeline) Run(ctx context.Context, tr api.Transport, in nlptypes.Input) (*output.Output, error) {
	if in == nil {
		return nil, lexaerr.UnsupportedInputf("pipeline input is nil")
	}
	if !p.hasLocal {
		return runRemote(ctx, tr, in, p.steps)
	}

	root := output.New(in.Text())
	node := root
	cur := in
	for i := 0; i < len(p.steps); {
		step := p.steps[i]
		if step.IsLocal() {
			i++
			next, nextIn, err := runLocal(ctx, step, cur, node)
			if err != nil {
				return nil, err
			}
			node, cur = next, nextIn
			continue
		}

		j := i
		for j < len(p.steps) && !p.steps[j].IsLocal() {
			j++
		}
		segment := p.steps[i:j]
		i = j

		built, err := runRemote(ctx, tr, cur, segment)
		if err != nil {
			return nil, err
		}
		node.Merge(built)
		if deepest := node.Deepest(); deepest != node {
			node = deepest
			cur = node
		}
	}
	return root, nil
}

// runRemote sends one all-API segment through the transport and builds its
// subtree.
func runRemote(ctx context.Context, tr api.Transport, in nlptypes.Input, steps []nlptypes.Skill) (*output.Output, error) {
	req, err := api.EncodeRequest(in, steps)
	if err != nil {
		return nil, err
	}
	resp, err := tr.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	return output.Build(steps, resp)
}

// runLocal executes one client-side skill against the current node. A local
// generator re-roots the rest of the pipeline onto its generated text, same
// as a hosted one.
func runLocal(ctx context.Context, step nlptypes.Skill, in nlptypes.Input, node *output.Output) (*output.Output, nlptypes.Input, error) {
	res, err := step.Run(ctx, in)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "running local skill %s", step.APIName)
	}
	if res == nil {
		res = &nlptypes.LocalResult{}
	}
	if step.IsGenerator() {
		child := output.New(res.Text)
		if step.LabelType != "" {
			view := step
			view.Kind = nlptypes.Analyzer
			child.AddLabels(view, res.Labels)
		}
		node.AddChild(step, child)
		return child, child, nil
	}
	node.AddLabels(step, res.Labels)
	return node, in, nil
}

// Job is a pipeline run submitted to the service's long-running task path.
type Job struct {
	handle api.JobHandle
	tr     api.AsyncTransport
	steps  []nlptypes.Skill
}

// Submit uploads the input for asynchronous processing and returns a job to
// collect later. Pipelines containing local skills cannot be deferred to the
// service and are rejected.
func (p *Pipeline) Submit(ctx context.Context, tr api.AsyncTransport, in nlptypes.Input) (*Job, error) {
	if p.hasLocal {
		return nil, lexaerr.Configf("pipelines with local skills cannot be submitted as jobs")
	}
	req, err := api.EncodeRequest(in, p.steps)
	if err != nil {
		return nil, err
	}
	handle, err := tr.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.G(ctx).WithField("task_id", handle.TaskID).Debug("pipeline submitted")
	return &Job{handle: handle, tr: tr, steps: p.steps}, nil
}

// TaskID returns the service-side identifier of the job.
func (j *Job) TaskID() string {
	return j.handle.TaskID
}

// Poll checks the job once. It returns (nil, false, nil) while the job is
// still processing and the built result tree once it completes.
func (j *Job) Poll(ctx context.Context) (*output.Output, bool, error) {
	result, err := j.tr.Poll(ctx, j.handle)
	if err != nil {
		return nil, false, err
	}
	switch result.Status {
	case api.StatusCompleted:
		out, err := output.Build(j.steps, result.Response)
		return out, true, err
	case api.StatusFailed:
		return nil, true, &lexaerr.TransportError{
			Kind:    lexaerr.KindServer,
			Message: "processing job failed",
			Details: "task " + j.handle.TaskID,
		}
	default:
		return nil, false, nil
	}
}

// Await blocks until the job completes, polling at the given interval, and
// returns the built result tree.
func (j *Job) Await(ctx context.Context, interval time.Duration) (*output.Output, error) {
	resp, err := api.Await(ctx, j.tr, j.handle, interval)
	if err != nil {
		return nil, err
	}
	return output.Build(j.steps, resp)
}
