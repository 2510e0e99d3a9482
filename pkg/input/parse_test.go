package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

func TestParseConversationSpeakerLines(t *testing.T) {
	transcript := "John: Hello, how are you?\nJane: I'm fine, thanks for asking.\nJohn: Great to hear."

	conv, err := ParseConversation(transcript)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 3)
	assert.Equal(t, "John", utterances[0].Speaker)
	assert.Equal(t, "Hello, how are you?", utterances[0].Text)
	assert.Equal(t, "Jane", utterances[1].Speaker)
	assert.Equal(t, "Great to hear.", utterances[2].Text)
}

func TestParseConversationContinuationLines(t *testing.T) {
	transcript := "John: This utterance continues\non the next line.\nJane: Understood."

	conv, err := ParseConversation(transcript)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "This utterance continues\non the next line.", utterances[0].Text)
}

func TestParseConversationCapsSpeakerOnOwnLine(t *testing.T) {
	transcript := "JOHN\nHello there.\nJANE\nHi John."

	conv, err := ParseConversation(transcript)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "JOHN", utterances[0].Speaker)
	assert.Equal(t, "Hello there.", utterances[0].Text)
	assert.Equal(t, "JANE", utterances[1].Speaker)
	assert.Equal(t, "Hi John.", utterances[1].Text)
}

func TestParseConversationTimestamps(t *testing.T) {
	transcript := "[3:07 PM, 3/15/2022] Adam: Helps\n[3:08 PM, 3/15/2022] Bella: With what?"

	conv, err := ParseConversation(transcript)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "Adam", utterances[0].Speaker)
	assert.Equal(t, "Helps", utterances[0].Text)
	assert.Equal(t, "3:07 PM, 3/15/2022", utterances[0].Timestamp)
}

func TestParseConversationClockTimestamp(t *testing.T) {
	transcript := "[12:30] John: hi\n[12:31] Jane: hello"

	conv, err := ParseConversation(transcript)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "12:30", utterances[0].Timestamp)
	assert.Equal(t, "John", utterances[0].Speaker)
	assert.Equal(t, "hi", utterances[0].Text)
}

func TestParseConversationJSON(t *testing.T) {
	text := `[{"speaker": "John", "utterance": "hello"}, {"speaker": "Jane", "utterance": "hi"}]`

	conv, err := ParseConversation(text)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "John", utterances[0].Speaker)
	assert.Equal(t, "hello", utterances[0].Text)
}

func TestParseConversationSRT(t *testing.T) {
	srt := "1\n00:00:01,000 --> 00:00:04,000\nHello and welcome.\n\n2\n00:00:05,000 --> 00:00:08,000\nToday we talk about\nlanguage pipelines.\n"

	conv, err := ParseConversation(srt)
	require.NoError(t, err)

	utterances := conv.Utterances()
	require.Len(t, utterances, 2)
	assert.Equal(t, "SPEAKER", utterances[0].Speaker)
	assert.Equal(t, "Hello and welcome.", utterances[0].Text)
	assert.Equal(t, "Today we talk about language pipelines.", utterances[1].Text)
}

func TestParseConversationInvalidFormat(t *testing.T) {
	_, err := ParseConversation("just some prose without any speakers at all")

	var unsupported *lexaerr.UnsupportedInputError
	require.ErrorAs(t, err, &unsupported)
}

func TestParseConversationDropsTrailingEmptySignature(t *testing.T) {
	conv, err := ParseConversation("John: hello\nJANE")
	require.NoError(t, err)
	assert.Len(t, conv.Utterances(), 1)
}

func TestConversationText(t *testing.T) {
	conv := NewConversation(
		nlptypes.Utterance{Speaker: "John", Text: "hello"},
	)
	assert.JSONEq(t, `[{"speaker": "John", "utterance": "hello"}]`, conv.Text())
	assert.Equal(t, nlptypes.TypeConversation, conv.TypeHint())
}
