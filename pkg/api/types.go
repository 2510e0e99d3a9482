// Package api defines the logical request/response contract with the hosted
// pipeline service, the Transport collaborator interface the SDK core depends
// on, and an HTTP implementation of it. The core never retries or rewrites
// transport failures; retry policy lives entirely inside the transport.
package api

import (
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Step is one pipeline step as serialized into a request.
type Step struct {
	Skill  string         `json:"skill"`
	Params map[string]any `json:"params,omitempty"`
}

// Request is the canonical encoded form of one pipeline invocation: the input
// payload plus the ordered skill list.
type Request struct {
	Text        string `json:"text"`
	Steps       []Step `json:"steps"`
	InputType   string `json:"input_type,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Encoding    string `json:"encoding,omitempty"`

	fileUpload bool
}

// FileUpload reports whether the request carries file bytes rather than
// inline text. The transport uses this to decide between the synchronous call
// and the long-running job path; that decision is policy of the transport,
// not of the pipeline core.
func (r *Request) FileUpload() bool {
	return r.fileUpload
}

// Block is one text block of a response. The block whose OriginStepID is zero
// holds the original input text; every other block holds text produced by the
// generator step the origin reference names, and is attached to the tree
// under that step's parent block.
type Block struct {
	ID             string           `json:"block_id"`
	OriginStepID   int              `json:"origin_step_id"`
	OriginStepName string           `json:"origin_step_name,omitempty"`
	Text           string           `json:"text"`
	Labels         []nlptypes.Label `json:"labels"`
}

// Response is the service's reply to a pipeline request: an ordered
// collection of labeled text blocks.
type Response struct {
	InputText string  `json:"input_text"`
	Blocks    []Block `json:"blocks"`
}
