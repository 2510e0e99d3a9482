package skills

import (
	"context"

	"github.com/abadojack/whatlanggo"

	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// DetectLanguage identifies the language of the input. It runs entirely on
// the client, so pipelines containing it split into local and API segments at
// execution time.
func DetectLanguage() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:   "detect-language",
		LabelType: "language",
		Run:       detectLanguage,
	}
}

func detectLanguage(_ context.Context, input nlptypes.Input) (*nlptypes.LocalResult, error) {
	info := whatlanggo.Detect(input.Text())
	return &nlptypes.LocalResult{
		Labels: []nlptypes.Label{
			{
				Type:  "language",
				Skill: "detect-language",
				Name:  info.Lang.Iso6391(),
				Value: info.Lang.String(),
				Data: map[string]any{
					"confidence": info.Confidence,
					"script":     whatlanggo.Scripts[info.Script],
				},
			},
		},
	}, nil
}
