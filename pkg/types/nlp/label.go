package nlp

import "fmt"

// Span marks a range of a text block. Offsets are rune offsets into the text
// of the output node that owns the label; they are never valid against any
// other node's text.
type Span struct {
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Section int    `json:"section"`
	Text    string `json:"text,omitempty"`
}

// Label marks a data point extracted from a text block. Attribute values
// largely depend on the skill that produced the label.
type Label struct {
	// Type is the label type, e.g. "entity", "keyword", "emotion".
	Type string `json:"type"`
	// Skill is the API name of the skill that produced the label.
	Skill string `json:"skill,omitempty"`
	// Name is the label class name, e.g. "PERSON", "happiness".
	Name string `json:"name,omitempty"`
	// Spans are the ranges of the owning node's text marked by the label.
	Spans []Span `json:"spans,omitempty"`
	// Value is the scalar value of the label, e.g. the matched text.
	Value string `json:"value,omitempty"`
	// Data holds additional skill-specific fields.
	Data map[string]any `json:"data,omitempty"`
}

func (l Label) String() string {
	s := fmt.Sprintf("Label(type=%s", l.Type)
	if l.Name != "" {
		s += fmt.Sprintf(", name=%s", l.Name)
	}
	if l.Value != "" {
		s += fmt.Sprintf(", value=%s", l.Value)
	}
	if len(l.Spans) > 0 {
		s += fmt.Sprintf(", span=[%d, %d]", l.Spans[0].Start, l.Spans[0].End)
	}
	return s + ")"
}

// Labels is a list of labels with convenience accessors for querying by
// attribute.
type Labels []Label

// Values returns the values of all labels, in order.
func (ls Labels) Values() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Value
	}
	return out
}

// Names returns the class names of all labels, in order.
func (ls Labels) Names() []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}

// SpanTexts returns the marked text of every span of every label, in order.
func (ls Labels) SpanTexts() []string {
	var out []string
	for _, l := range ls {
		for _, sp := range l.Spans {
			out = append(out, sp.Text)
		}
	}
	return out
}
