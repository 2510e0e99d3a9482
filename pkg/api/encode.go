package api

import (
	"github.com/lexalang/lexa-go/pkg/input"
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// EncodeRequest combines an input payload and an ordered skill list into one
// outbound request. File payloads are forwarded byte-for-byte in their
// declared encoding; the encoder never inspects file contents. A nil or
// unrecognized payload fails with an UnsupportedInputError before any network
// interaction.
func EncodeRequest(in nlptypes.Input, steps []nlptypes.Skill) (*Request, error) {
	if in == nil {
		return nil, lexaerr.UnsupportedInputf("nil input payload")
	}

	req := &Request{
		Text:        in.Text(),
		Steps:       make([]Step, 0, len(steps)),
		InputType:   in.TypeHint(),
		ContentType: in.ContentType(),
		Encoding:    in.Encoding(),
	}
	if _, ok := in.(*input.File); ok {
		req.fileUpload = true
	}

	for _, skill := range steps {
		if skill.IsLocal() {
			return nil, lexaerr.Configf("local skill %q cannot be encoded into an API request", skill.APIName)
		}
		req.Steps = append(req.Steps, Step{
			Skill:  skill.APIName,
			Params: skill.RequestParams(),
		})
	}
	return req, nil
}
