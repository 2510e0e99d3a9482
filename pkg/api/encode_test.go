package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexalang/lexa-go/pkg/input"
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	"github.com/lexalang/lexa-go/pkg/skills"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

func TestEncodeRequestDocument(t *testing.T) {
	summarize, err := skills.Summarize(skills.SummarizeOpts{MinLength: 10})
	require.NoError(t, err)

	req, err := EncodeRequest(input.NewDocument("analyze this text."), []nlptypes.Skill{skills.Keywords(), summarize})
	require.NoError(t, err)

	body, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"text": "analyze this text.",
		"input_type": "article",
		"steps": [
			{"skill": "keywords"},
			{"skill": "summarize", "params": {"min_length": 10}}
		]
	}`, string(body))
	assert.False(t, req.FileUpload())
}

func TestEncodeRequestConversation(t *testing.T) {
	conv := input.NewConversation(
		nlptypes.Utterance{Speaker: "John", Text: "hello"},
		nlptypes.Utterance{Speaker: "Jane", Text: "hi"},
	)

	req, err := EncodeRequest(conv, []nlptypes.Skill{skills.Emotions()})
	require.NoError(t, err)

	assert.Equal(t, nlptypes.TypeConversation, req.InputType)
	assert.JSONEq(t, conv.Text(), req.Text)
}

func TestEncodeRequestFile(t *testing.T) {
	file, err := input.NewFile("call.wav", []byte{0x52, 0x49, 0x46, 0x46})
	require.NoError(t, err)

	req, err := EncodeRequest(file, []nlptypes.Skill{skills.Keywords()})
	require.NoError(t, err)

	assert.True(t, req.FileUpload())
	assert.Equal(t, "audio/wav", req.ContentType)
	assert.Equal(t, nlptypes.EncodingBase64, req.Encoding)
}

func TestEncodeRequestNilInput(t *testing.T) {
	_, err := EncodeRequest(nil, []nlptypes.Skill{skills.Keywords()})

	var unsupported *lexaerr.UnsupportedInputError
	require.ErrorAs(t, err, &unsupported)
}

func TestEncodeRequestRejectsLocalSkill(t *testing.T) {
	_, err := EncodeRequest(input.NewDocument("text"), []nlptypes.Skill{skills.DetectLanguage()})

	var cfgErr *lexaerr.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
