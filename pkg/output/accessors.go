package output

import (
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Typed shortcuts for the built-in skills. Each delegates to the generic
// accessor and inherits its ran-vs-absent semantics.

func (o *Output) Entities() (nlptypes.Labels, error)   { return o.Labels("entities") }
func (o *Output) Keywords() (nlptypes.Labels, error)   { return o.Labels("keywords") }
func (o *Output) Emotions() (nlptypes.Labels, error)   { return o.Labels("emotions") }
func (o *Output) Sentiments() (nlptypes.Labels, error) { return o.Labels("sentiments") }
func (o *Output) Highlights() (nlptypes.Labels, error) { return o.Labels("highlights") }
func (o *Output) Topics() (nlptypes.Labels, error)     { return o.Labels("topics") }
func (o *Output) ActionItems() (nlptypes.Labels, error) {
	return o.Labels("action-items")
}

// Origins returns the source spans a summary traces back to. Available on a
// summary node when the pipeline requested origin tracking.
func (o *Output) Origins() (nlptypes.Labels, error) { return o.Labels("origins") }

// Language returns the detected-language label of the local language skill.
func (o *Output) Language() (nlptypes.Labels, error) { return o.Labels("language") }

func (o *Output) Summary() (*Output, error)     { return o.Child("summarize") }
func (o *Output) Anonymized() (*Output, error)  { return o.Child("anonymize") }
func (o *Output) Proofread() (*Output, error)   { return o.Child("proofread") }
func (o *Output) HTMLArticle() (*Output, error) { return o.Child("html_article") }
func (o *Output) HTMLText() (*Output, error)    { return o.Child("html_text") }
