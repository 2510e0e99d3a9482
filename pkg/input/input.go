// Package input provides the payload types a pipeline accepts: plain
// documents, structured conversations, and files. It also parses common
// transcript formats (speaker-prefixed text, SRT captions, conversation JSON)
// into structured conversations.
package input

import (
	"encoding/json"

	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// Document is any text without a structured format.
type Document struct {
	text string
}

// NewDocument wraps a plain text as a pipeline input.
func NewDocument(text string) Document {
	return Document{text: text}
}

func (d Document) Text() string        { return d.text }
func (d Document) TypeHint() string    { return nlptypes.TypeArticle }
func (d Document) ContentType() string { return "" }
func (d Document) Encoding() string    { return "" }

// Conversation is an ordered sequence of utterances with speakers.
type Conversation struct {
	utterances []nlptypes.Utterance
}

// NewConversation builds a conversation input from utterances.
func NewConversation(utterances ...nlptypes.Utterance) Conversation {
	copied := make([]nlptypes.Utterance, len(utterances))
	copy(copied, utterances)
	return Conversation{utterances: copied}
}

// Utterances returns a copy of the conversation's turns.
func (c Conversation) Utterances() []nlptypes.Utterance {
	out := make([]nlptypes.Utterance, len(c.utterances))
	copy(out, c.utterances)
	return out
}

// Text returns the conversation serialized to the service's JSON form.
func (c Conversation) Text() string {
	b, err := json.Marshal(c.utterances)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func (c Conversation) TypeHint() string    { return nlptypes.TypeConversation }
func (c Conversation) ContentType() string { return "" }
func (c Conversation) Encoding() string    { return "" }
