package input

import (
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// File is a file payload: raw bytes plus the content type and encoding the
// declared extension implies. The SDK never parses file contents; the bytes
// are forwarded to the transport, which decides whether the upload needs the
// long-running job path.
type File struct {
	name        string
	data        []byte
	contentType string
	encoding    string
	typeHint    string
}

// FileOption adjusts how a file payload is built.
type FileOption func(*File)

// WithTypeHint suggests which models the service should use for the file's
// content, one of nlp.TypeArticle or nlp.TypeConversation.
func WithTypeHint(hint string) FileOption {
	return func(f *File) {
		f.typeHint = hint
	}
}

// extensions maps supported file extensions to the content type and encoding
// sent alongside the payload.
var extensions = map[string]struct {
	contentType string
	encoding    string
}{
	".txt":  {"text/plain", nlptypes.EncodingUTF8},
	".json": {"application/json", nlptypes.EncodingUTF8},
	".html": {"text/html", nlptypes.EncodingUTF8},
	".jpg":  {"image/jpeg", nlptypes.EncodingBase64},
	".jpeg": {"image/jpeg", nlptypes.EncodingBase64},
	".wav":  {"audio/wav", nlptypes.EncodingBase64},
	".mp3":  {"audio/mpeg", nlptypes.EncodingBase64},
}

// NewFile builds a pipeline input from file contents and the file's declared
// name. SRT caption files are parsed into a Conversation locally since the
// pipeline API has no caption content type. For other supported extensions
// the bytes are forwarded as-is, text encoded utf8 and binary base64. A file
// with an unknown extension is classified by sniffing its content; if that
// also fails, an UnsupportedInputError is returned.
func NewFile(name string, data []byte, opts ...FileOption) (nlptypes.Input, error) {
	ext := strings.ToLower(filepath.Ext(name))

	if ext == ".srt" {
		conv, err := ParseConversation(string(data))
		if err != nil {
			return nil, err
		}
		return conv, nil
	}

	f := &File{name: name, data: data}
	for _, opt := range opts {
		opt(f)
	}

	if known, ok := extensions[ext]; ok {
		f.contentType = known.contentType
		f.encoding = known.encoding
		return f, nil
	}

	detected := mimetype.Detect(data)
	for sniffed := detected; sniffed != nil; sniffed = sniffed.Parent() {
		for _, known := range extensions {
			if sniffed.Is(known.contentType) {
				f.contentType = known.contentType
				f.encoding = known.encoding
				return f, nil
			}
		}
	}

	return nil, lexaerr.UnsupportedInputf("file %q: unsupported extension %q (detected content type %s)", name, ext, detected.String())
}

// Name returns the declared file name.
func (f *File) Name() string { return f.name }

// Text returns the file data in its transport encoding.
func (f *File) Text() string {
	if f.encoding == nlptypes.EncodingBase64 {
		return base64.StdEncoding.EncodeToString(f.data)
	}
	return string(f.data)
}

func (f *File) TypeHint() string    { return f.typeHint }
func (f *File) ContentType() string { return f.contentType }
func (f *File) Encoding() string    { return f.encoding }
