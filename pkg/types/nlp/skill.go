// Package nlp holds the shared value types of the SDK: skills, labels, spans
// and the input contract. It sits at the bottom of the dependency graph so the
// pipeline, encoding and output packages can all share these types without
// cycles.
package nlp

import (
	"context"
	"encoding/json"
	"reflect"
)

// Kind classifies a skill by what it produces.
type Kind int

const (
	// Analyzer skills scan a text and extract structured labels from it.
	Analyzer Kind = iota
	// Generator skills produce a new text from their input. Skills placed
	// after a generator in a pipeline run against the generated text.
	Generator
)

func (k Kind) String() string {
	if k == Generator {
		return "generator"
	}
	return "analyzer"
}

// LocalResult is what a locally-run skill produces: generated text for
// generators, labels for analyzers.
type LocalResult struct {
	Text   string
	Labels []Label
}

// LocalFunc runs a skill on the client instead of sending it to the API.
type LocalFunc func(ctx context.Context, input Input) (*LocalResult, error)

// Skill describes one pipeline step: the API name of the hosted skill plus its
// parameters. Skills are value objects; once constructed they are never
// mutated, which makes a pipeline safe to share across goroutines.
type Skill struct {
	// APIName is the name of the skill in the pipeline API, e.g. "summarize".
	APIName string
	// Kind determines branching: a Generator re-roots all subsequent skills
	// onto its generated text.
	Kind Kind
	// LabelType is the type tag of labels this skill produces, e.g. "keyword".
	LabelType string
	// TextAttr names the generated-text accessor for generator skills, e.g.
	// "summary". Empty for analyzers.
	TextAttr string
	// LabelsAttr names the labels accessor, e.g. "origins" for the labels a
	// summary generator attaches to its generated text.
	LabelsAttr string
	// Params holds the skill parameters sent to the API. Zero values are
	// omitted from the request.
	Params map[string]any
	// NeedsGenerated marks an analyzer documented to expect generated text.
	// Placing such a skill before any generator triggers an advisory warning
	// at pipeline construction, not an error.
	NeedsGenerated bool
	// Run, when set, executes the skill locally instead of via the API.
	Run LocalFunc `json:"-"`
}

// IsGenerator reports whether the skill produces a new text.
func (s Skill) IsGenerator() bool {
	return s.Kind == Generator
}

// IsLocal reports whether the skill runs on the client.
func (s Skill) IsLocal() bool {
	return s.Run != nil
}

// Equal compares two skills by structural content. The local run function is
// not comparable and is ignored.
func (s Skill) Equal(other Skill) bool {
	return s.APIName == other.APIName &&
		s.Kind == other.Kind &&
		s.LabelType == other.LabelType &&
		s.TextAttr == other.TextAttr &&
		s.LabelsAttr == other.LabelsAttr &&
		s.NeedsGenerated == other.NeedsGenerated &&
		reflect.DeepEqual(normalizeParams(s.Params), normalizeParams(other.Params))
}

// Fingerprint returns a canonical string form of the skill name and its
// parameters, usable as a cache or deduplication key.
func (s Skill) Fingerprint() string {
	b, err := json.Marshal(struct {
		Skill  string         `json:"skill"`
		Params map[string]any `json:"params,omitempty"`
	}{Skill: s.APIName, Params: normalizeParams(s.Params)})
	if err != nil {
		return s.APIName
	}
	return string(b)
}

// normalizeParams drops zero-valued entries so that {"min_length": 0} and an
// absent parameter compare and serialize identically, matching what the
// request encoder sends.
func normalizeParams(params map[string]any) map[string]any {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		if v == nil {
			continue
		}
		rv := reflect.ValueOf(v)
		if rv.IsZero() {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// RequestParams returns the parameters to serialize into a pipeline request,
// with zero values omitted.
func (s Skill) RequestParams() map[string]any {
	return normalizeParams(s.Params)
}
