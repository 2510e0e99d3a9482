package nlp

// Input type hints recognized by the pipeline API.
const (
	TypeArticle      = "article"
	TypeConversation = "conversation"
)

// Content encodings for file payloads.
const (
	EncodingUTF8   = "utf8"
	EncodingBase64 = "b64"
)

// Input is the contract every pipeline payload satisfies. Implementations are
// the input package's Document, Conversation and File types; Output satisfies
// it too so a generated text can feed a follow-up pipeline.
type Input interface {
	// Text returns the payload as the string that is sent to the API.
	Text() string
	// TypeHint suggests which models the service should use, one of
	// TypeArticle or TypeConversation. May be empty.
	TypeHint() string
	// ContentType is the MIME type of the payload, empty when implicit.
	ContentType() string
	// Encoding is the payload encoding for file inputs, empty otherwise.
	Encoding() string
}

// Utterance is one turn of a conversation.
type Utterance struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"utterance"`
	Timestamp string `json:"timestamp,omitempty"`
}
