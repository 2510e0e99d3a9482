package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexalang/lexa-go/pkg/api"
	"github.com/lexalang/lexa-go/pkg/lexaerr"
	"github.com/lexalang/lexa-go/pkg/skills"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

func label(typ, name string, start, end int) nlptypes.Label {
	return nlptypes.Label{
		Type:  typ,
		Name:  name,
		Spans: []nlptypes.Span{{Start: start, End: end, Text: name}},
	}
}

func TestBuildAnalyzersOnly(t *testing.T) {
	steps := []nlptypes.Skill{skills.Keywords(), skills.Sentiments()}
	resp := &api.Response{
		InputText: "the pipeline produces keywords and sentiments",
		Blocks: []api.Block{
			{
				ID:           "b0",
				OriginStepID: 0,
				Text:         "the pipeline produces keywords and sentiments",
				Labels: []nlptypes.Label{
					label("keyword", "pipeline", 4, 12),
					label("sentiment", "POS", 0, 45),
					label("keyword", "sentiments", 35, 45),
				},
			},
		},
	}

	out, err := Build(steps, resp)
	require.NoError(t, err)
	assert.Equal(t, resp.InputText, out.Text())
	assert.Empty(t, out.Children())

	keywords, err := out.Keywords()
	require.NoError(t, err)
	require.Len(t, keywords, 2)
	assert.Equal(t, []string{"pipeline", "sentiments"}, keywords.Names())

	sentiments, err := out.Labels("sentiment")
	require.NoError(t, err)
	require.Len(t, sentiments, 1)
	assert.Equal(t, "POS", sentiments[0].Name)
}

func TestBuildGeneratorChain(t *testing.T) {
	summarize, err := skills.Summarize(skills.SummarizeOpts{FindOrigins: true})
	require.NoError(t, err)
	steps := []nlptypes.Skill{skills.Emotions(), summarize, skills.Keywords()}
	resp := &api.Response{
		InputText: "a long and somewhat angry article",
		Blocks: []api.Block{
			{
				ID:           "b0",
				OriginStepID: 0,
				Text:         "a long and somewhat angry article",
				Labels:       []nlptypes.Label{label("emotion", "anger", 20, 25)},
			},
			{
				ID:             "b1",
				OriginStepID:   2,
				OriginStepName: "summarize",
				Text:           "an angry article",
				Labels: []nlptypes.Label{
					label("origin", "an", 0, 2),
					label("keyword", "article", 9, 16),
				},
			},
		},
	}

	out, err := Build(steps, resp)
	require.NoError(t, err)

	emotions, err := out.Emotions()
	require.NoError(t, err)
	assert.Equal(t, []string{"anger"}, emotions.Names())

	// Keywords ran after the generator, so they belong to the summary node.
	_, err = out.Keywords()
	var notFound *lexaerr.LabelNotFoundError
	require.ErrorAs(t, err, &notFound)

	summary, err := out.Summary()
	require.NoError(t, err)
	assert.Equal(t, "an angry article", summary.Text())
	assert.Same(t, summary, out.Deepest())

	keywords, err := summary.Keywords()
	require.NoError(t, err)
	assert.Equal(t, []string{"article"}, keywords.Names())

	// The generator's own labels point into the generated text.
	origins, err := summary.Origins()
	require.NoError(t, err)
	require.Len(t, origins, 1)
	assert.Equal(t, nlptypes.Span{Start: 0, End: 2, Text: "an"}, origins[0].Spans[0])
}

func TestBuildOrderSensitivity(t *testing.T) {
	anonymize := skills.Anonymize()
	keywords := skills.Keywords()
	resp := func(keywordBlock int) *api.Response {
		blocks := []api.Block{
			{ID: "b0", OriginStepID: 0, Text: "Alice wrote this"},
			{ID: "b1", OriginStepID: 0, Text: "REDACTED wrote this"},
		}
		blocks[keywordBlock].Labels = []nlptypes.Label{label("keyword", "wrote", 6, 11)}
		return &api.Response{InputText: "Alice wrote this", Blocks: blocks}
	}

	// [keywords, anonymize]: keywords saw the input text.
	r := resp(0)
	r.Blocks[1].OriginStepID = 2
	out, err := Build([]nlptypes.Skill{keywords, anonymize}, r)
	require.NoError(t, err)
	got, err := out.Keywords()
	require.NoError(t, err)
	assert.Len(t, got, 1)
	_, err = out.Children()["anonymize"].Keywords()
	assert.Error(t, err)

	// [anonymize, keywords]: keywords saw the anonymized text.
	r = resp(1)
	r.Blocks[1].OriginStepID = 1
	out, err = Build([]nlptypes.Skill{anonymize, keywords}, r)
	require.NoError(t, err)
	_, err = out.Keywords()
	assert.Error(t, err)
	child, err := out.Anonymized()
	require.NoError(t, err)
	got, err = child.Keywords()
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestBuildRanEmptyVersusNotRun(t *testing.T) {
	steps := []nlptypes.Skill{skills.Keywords()}
	resp := &api.Response{
		InputText: "nothing of note",
		Blocks:    []api.Block{{ID: "b0", OriginStepID: 0, Text: "nothing of note"}},
	}

	out, err := Build(steps, resp)
	require.NoError(t, err)

	keywords, err := out.Keywords()
	require.NoError(t, err)
	assert.NotNil(t, keywords)
	assert.Empty(t, keywords)

	_, err = out.Emotions()
	var notFound *lexaerr.LabelNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Error(), "emotions")
}

func TestBuildMalformedResponses(t *testing.T) {
	anonymize := skills.Anonymize()
	proofread := skills.Proofread()
	keywords := skills.Keywords()

	tests := []struct {
		name   string
		steps  []nlptypes.Skill
		blocks []api.Block
	}{
		{
			name:   "no blocks",
			steps:  []nlptypes.Skill{keywords},
			blocks: nil,
		},
		{
			name:  "no input block",
			steps: []nlptypes.Skill{anonymize},
			blocks: []api.Block{
				{ID: "b1", OriginStepID: 1, Text: "x"},
			},
		},
		{
			name:  "two input blocks",
			steps: []nlptypes.Skill{keywords},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b1", OriginStepID: 0, Text: "x"},
			},
		},
		{
			name:  "unknown step id",
			steps: []nlptypes.Skill{anonymize},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b1", OriginStepID: 4, Text: "x"},
			},
		},
		{
			name:  "origin step is not a generator",
			steps: []nlptypes.Skill{keywords, anonymize},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b1", OriginStepID: 1, Text: "x"},
			},
		},
		{
			name:  "origin step name mismatch",
			steps: []nlptypes.Skill{anonymize},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b1", OriginStepID: 1, OriginStepName: "proofread", Text: "x"},
			},
		},
		{
			name:  "duplicate block per step",
			steps: []nlptypes.Skill{anonymize},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b1", OriginStepID: 1, Text: "x"},
				{ID: "b2", OriginStepID: 1, Text: "x"},
			},
		},
		{
			name:  "dangling parent",
			steps: []nlptypes.Skill{anonymize, proofread},
			blocks: []api.Block{
				{ID: "b0", OriginStepID: 0, Text: "x"},
				{ID: "b2", OriginStepID: 2, Text: "x"},
			},
		},
		{
			name:  "span outside text",
			steps: []nlptypes.Skill{keywords},
			blocks: []api.Block{
				{
					ID:           "b0",
					OriginStepID: 0,
					Text:         "short",
					Labels:       []nlptypes.Label{label("keyword", "short", 0, 12)},
				},
			},
		},
		{
			name:  "inverted span",
			steps: []nlptypes.Skill{keywords},
			blocks: []api.Block{
				{
					ID:           "b0",
					OriginStepID: 0,
					Text:         "short",
					Labels:       []nlptypes.Label{label("keyword", "short", 4, 2)},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.steps, &api.Response{InputText: "x", Blocks: tt.blocks})
			var malformed *lexaerr.MalformedResponseError
			require.ErrorAs(t, err, &malformed)
		})
	}
}

func TestBuildSpanOffsetsAreRunes(t *testing.T) {
	// Five runes, six bytes. A span ending at 5 covers the whole word; a
	// span ending at 6 is only in range if offsets were (wrongly) bytes.
	text := "héllo"
	steps := []nlptypes.Skill{skills.Keywords()}
	resp := func(end int) *api.Response {
		return &api.Response{
			InputText: text,
			Blocks: []api.Block{
				{
					ID:           "b0",
					OriginStepID: 0,
					Text:         text,
					Labels:       []nlptypes.Label{label("keyword", "héllo", 0, end)},
				},
			},
		}
	}

	out, err := Build(steps, resp(5))
	require.NoError(t, err)
	keywords, err := out.Keywords()
	require.NoError(t, err)
	require.Len(t, keywords, 1)

	_, err = Build(steps, resp(6))
	var malformed *lexaerr.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestBuildMissingTrailingGenerator(t *testing.T) {
	// The service may stop generating early; the tree is just shallower and
	// accessing the missing branch reports the skill as not run.
	steps := []nlptypes.Skill{skills.Anonymize(), skills.Proofread()}
	resp := &api.Response{
		InputText: "original",
		Blocks: []api.Block{
			{ID: "b0", OriginStepID: 0, Text: "original"},
			{ID: "b1", OriginStepID: 1, Text: "anonymized"},
		},
	}

	out, err := Build(steps, resp)
	require.NoError(t, err)
	child, err := out.Anonymized()
	require.NoError(t, err)
	_, err = child.Proofread()
	var notFound *lexaerr.LabelNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestOutputMerge(t *testing.T) {
	a := New("text")
	a.AddLabels(skills.Keywords(), nlptypes.Labels{label("keyword", "one", 0, 3)})
	b := New("text")
	b.AddLabels(skills.Emotions(), nlptypes.Labels{})
	b.AddChild(skills.Anonymize(), New("redacted"))

	a.Merge(b)
	assert.Equal(t, []string{"keywords", "emotions"}, a.SkillNames())
	emotions, err := a.Emotions()
	require.NoError(t, err)
	assert.Empty(t, emotions)
	child, err := a.Anonymized()
	require.NoError(t, err)
	assert.Equal(t, "redacted", child.Text())
}

func TestOutputAliasLookup(t *testing.T) {
	out := New("text")
	out.AddLabels(skills.Topics(), nlptypes.Labels{label("topic", "go", 0, 2)})

	for _, name := range []string{"topics", "article-topics", "topic"} {
		got, err := out.Labels(name)
		require.NoError(t, err, name)
		assert.Len(t, got, 1, name)
	}
}
