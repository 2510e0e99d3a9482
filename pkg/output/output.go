// Package output models the result of a pipeline run as a typed tree. The
// root node holds the original input text and the labels of analyzer skills
// that ran against it; every generator skill in the pipeline contributes a
// child node holding its generated text and the results of the skills that
// ran after it. Accessors distinguish three cases: a skill that ran and found
// labels, a skill that ran and found nothing (empty list), and a skill that
// never ran on the queried branch (LabelNotFoundError).
package output

import (
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Output is one node of the result tree. It satisfies nlp.Input, so a
// generated text can be fed into a follow-up pipeline directly.
type Output struct {
	text string

	// skillNames holds the canonical accessor names of label-bearing skills
	// that ran on this node, in pipeline order.
	skillNames []string
	labels     map[string]nlptypes.Labels

	// childNames holds generator names in pipeline order. The base model is
	// strictly linear, so there is at most one child, but the tree shape
	// does not assume it.
	childNames []string
	children   map[string]*Output

	// aliases maps every accepted lookup name (API name, label type,
	// attribute name) to the canonical name it resolves to.
	aliases map[string]string
}

// New creates an empty output node for the given text.
func New(text string) *Output {
	return &Output{
		text:     text,
		labels:   map[string]nlptypes.Labels{},
		children: map[string]*Output{},
		aliases:  map[string]string{},
	}
}

func (o *Output) Text() string        { return o.text }
func (o *Output) TypeHint() string    { return nlptypes.TypeArticle }
func (o *Output) ContentType() string { return "" }
func (o *Output) Encoding() string    { return "" }

// labelsName picks the canonical accessor name of a label-bearing skill.
func labelsName(skill nlptypes.Skill) string {
	if skill.LabelsAttr != "" {
		return skill.LabelsAttr
	}
	return skill.APIName
}

// childName picks the canonical accessor name of a generator's child node.
func childName(skill nlptypes.Skill) string {
	return skill.APIName
}

func (o *Output) addAlias(alias, canonical string) {
	if alias == "" {
		return
	}
	if _, taken := o.aliases[alias]; !taken {
		o.aliases[alias] = canonical
	}
}

// AddLabels records a skill's labels on this node. A nil labels argument is
// stored as an empty list: the skill ran here and found nothing.
func (o *Output) AddLabels(skill nlptypes.Skill, labels nlptypes.Labels) {
	name := labelsName(skill)
	if _, exists := o.labels[name]; !exists {
		o.skillNames = append(o.skillNames, name)
	}
	if labels == nil {
		labels = nlptypes.Labels{}
	}
	o.labels[name] = append(o.labels[name], labels...)
	o.addAlias(name, name)
	o.addAlias(skill.APIName, name)
	o.addAlias(skill.LabelType, name)
	o.addAlias(skill.LabelsAttr, name)
}

// AddChild attaches the node a generator skill produced.
func (o *Output) AddChild(skill nlptypes.Skill, child *Output) {
	name := childName(skill)
	if _, exists := o.children[name]; !exists {
		o.childNames = append(o.childNames, name)
	}
	o.children[name] = child
	o.addAlias(name, name)
	o.addAlias(skill.TextAttr, name)
}

// Merge adopts the results of another node produced from the same text,
// preserving order. Used by the pipeline runner when local and API segments
// both contribute to one node.
func (o *Output) Merge(other *Output) {
	if other == nil {
		return
	}
	for _, name := range other.skillNames {
		if _, exists := o.labels[name]; !exists {
			o.skillNames = append(o.skillNames, name)
		}
		o.labels[name] = append(o.labels[name], other.labels[name]...)
	}
	for _, name := range other.childNames {
		if _, exists := o.children[name]; !exists {
			o.childNames = append(o.childNames, name)
		}
		o.children[name] = other.children[name]
	}
	for alias, canonical := range other.aliases {
		o.addAlias(alias, canonical)
	}
}

// Labels returns the labels a skill produced on this node. The name may be
// the skill's API name, its label type, or its attribute name. A skill that
// ran and found nothing yields an empty list; a skill that never ran on this
// branch yields a LabelNotFoundError.
func (o *Output) Labels(name string) (nlptypes.Labels, error) {
	canonical, ok := o.aliases[name]
	if !ok {
		return nil, &lexaerr.LabelNotFoundError{Skill: name}
	}
	labels, ok := o.labels[canonical]
	if !ok {
		return nil, &lexaerr.LabelNotFoundError{Skill: name}
	}
	out := make(nlptypes.Labels, len(labels))
	copy(out, labels)
	return out, nil
}

// Child returns the node a generator skill produced, looked up by the
// generator's API name or text attribute. A generator that never ran on this
// branch yields a LabelNotFoundError.
func (o *Output) Child(name string) (*Output, error) {
	canonical, ok := o.aliases[name]
	if !ok {
		return nil, &lexaerr.LabelNotFoundError{Skill: name}
	}
	child, ok := o.children[canonical]
	if !ok {
		return nil, &lexaerr.LabelNotFoundError{Skill: name}
	}
	return child, nil
}

// Children returns the node's children keyed by generator name.
func (o *Output) Children() map[string]*Output {
	out := make(map[string]*Output, len(o.children))
	for name, child := range o.children {
		out[name] = child
	}
	return out
}

// SkillNames returns the canonical names of label-bearing skills that ran on
// this node, in pipeline order.
func (o *Output) SkillNames() []string {
	out := make([]string, len(o.skillNames))
	copy(out, o.skillNames)
	return out
}

// Deepest follows the generated-text chain to the last node. With no
// generator skills it returns the node itself.
func (o *Output) Deepest() *Output {
	node := o
	for len(node.childNames) > 0 {
		node = node.children[node.childNames[len(node.childNames)-1]]
	}
	return node
}
