// Package skills provides the catalog of hosted language skills. Each
// constructor validates the skill's documented parameter ranges and returns an
// immutable descriptor; invalid parameters fail here, at build time, before
// anything touches the network.
package skills

import (
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// SummarizeOpts holds the parameters of the summarize skill. Zero values mean
// automatic behavior and are omitted from the request.
type SummarizeOpts struct {
	// MinLength is the minimal desired length of the summary, in words.
	MinLength int
	// MaxLength is the maximal desired length of the summary, in words.
	MaxLength int
	// FindOrigins maps words of the summary back to the input text.
	FindOrigins bool
}

// Summarize produces a summary of its input. It is a generator skill: skills
// placed after it run against the summary text. With FindOrigins set, the
// summary node carries "origin" labels pointing back into the input.
func Summarize(opts SummarizeOpts) (nlptypes.Skill, error) {
	if opts.MinLength < 0 {
		return nlptypes.Skill{}, lexaerr.Configf("summarize: min length must be a positive integer, got %d", opts.MinLength)
	}
	if opts.MaxLength < 0 {
		return nlptypes.Skill{}, lexaerr.Configf("summarize: max length must be a positive integer, got %d", opts.MaxLength)
	}
	if opts.MinLength > 0 && opts.MaxLength > 0 && opts.MinLength > opts.MaxLength {
		return nlptypes.Skill{}, lexaerr.Configf("summarize: min length %d exceeds max length %d", opts.MinLength, opts.MaxLength)
	}
	return nlptypes.Skill{
		APIName:    "summarize",
		Kind:       nlptypes.Generator,
		LabelType:  "origin",
		TextAttr:   "summary",
		LabelsAttr: "origins",
		Params: map[string]any{
			"min_length":   opts.MinLength,
			"max_length":   opts.MaxLength,
			"find_origins": opts.FindOrigins,
		},
	}, nil
}

// Entities detects named entities in the input.
func Entities() nlptypes.Skill {
	return nlptypes.Skill{APIName: "entities", LabelType: "entity"}
}

// Keywords detects keywords in the input.
func Keywords() nlptypes.Skill {
	return nlptypes.Skill{APIName: "keywords", LabelType: "keyword"}
}

// Emotions detects emotions conveyed by spans of the input.
func Emotions() nlptypes.Skill {
	return nlptypes.Skill{APIName: "emotions", LabelType: "emotion"}
}

// Sentiments detects positive and negative sentiment in the input.
func Sentiments() nlptypes.Skill {
	return nlptypes.Skill{APIName: "sentiments", LabelType: "sentiment"}
}

// Highlights detects highlight-worthy spans of the input.
func Highlights() nlptypes.Skill {
	return nlptypes.Skill{APIName: "highlights", LabelType: "highlight"}
}

// Topics extracts topics of the input.
func Topics() nlptypes.Skill {
	return nlptypes.Skill{APIName: "article-topics", LabelType: "topic", LabelsAttr: "topics"}
}

// ActionItems detects action items in the input, e.g. "let's schedule another
// meeting for next Sunday".
func ActionItems() nlptypes.Skill {
	return nlptypes.Skill{APIName: "action-items", LabelType: "action-item", LabelsAttr: "action_items"}
}

// Anonymize rewrites the input with personal information removed. It is a
// generator skill; the anonymized node carries "anonymized" labels marking
// what was removed.
func Anonymize() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:    "anonymize",
		Kind:       nlptypes.Generator,
		LabelType:  "anonymized",
		TextAttr:   "anonymized",
		LabelsAttr: "anonymizations",
	}
}

// Proofread rewrites the input with grammar and spelling corrected. It is a
// generator skill; the corrected node carries "replacement" labels for each
// change made.
func Proofread() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:    "proofread",
		Kind:       nlptypes.Generator,
		LabelType:  "replacement",
		TextAttr:   "proofread",
		LabelsAttr: "replacements",
	}
}

// EnhanceTranscription rewrites a conversation with fillers and transcription
// mistakes removed. Only meaningful for conversation inputs.
func EnhanceTranscription() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:    "enhance",
		Kind:       nlptypes.Generator,
		LabelType:  "replacement",
		TextAttr:   "enhanced",
		LabelsAttr: "replacements",
	}
}

// HTMLExtractArticle extracts the main article from an HTML page, dropping
// navigation, ads and boilerplate.
func HTMLExtractArticle() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:  "extract-html",
		Kind:     nlptypes.Generator,
		TextAttr: "html_article",
	}
}

// HTMLExtractText extracts all visible text from an HTML page.
func HTMLExtractText() nlptypes.Skill {
	return nlptypes.Skill{
		APIName:  "html-extract-text",
		Kind:     nlptypes.Generator,
		TextAttr: "html_text",
	}
}

// CustomOpts configures a Custom skill descriptor.
type CustomOpts struct {
	Kind       nlptypes.Kind
	LabelType  string
	TextAttr   string
	LabelsAttr string
	Params     map[string]any
	// NeedsGenerated documents that the skill expects generated text and is
	// probably misplaced before the pipeline's first generator.
	NeedsGenerated bool
}

// Custom builds a descriptor for a skill not covered by the catalog, e.g. a
// skill still in beta. The API name must be non-empty.
func Custom(apiName string, opts CustomOpts) (nlptypes.Skill, error) {
	if apiName == "" {
		return nlptypes.Skill{}, lexaerr.Configf("custom skill requires a non-empty API name")
	}
	return nlptypes.Skill{
		APIName:        apiName,
		Kind:           opts.Kind,
		LabelType:      opts.LabelType,
		TextAttr:       opts.TextAttr,
		LabelsAttr:     opts.LabelsAttr,
		Params:         opts.Params,
		NeedsGenerated: opts.NeedsGenerated,
	}, nil
}
