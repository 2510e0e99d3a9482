package skills

import (
	"sort"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

// builders maps skill names, as they appear in config files and on the
// command line, to validating constructors.
var builders = map[string]func(params map[string]any) (nlptypes.Skill, error){
	"summarize": func(params map[string]any) (nlptypes.Skill, error) {
		opts := SummarizeOpts{}
		var err error
		if opts.MinLength, err = intParam(params, "min_length"); err != nil {
			return nlptypes.Skill{}, err
		}
		if opts.MaxLength, err = intParam(params, "max_length"); err != nil {
			return nlptypes.Skill{}, err
		}
		opts.FindOrigins, _ = params["find_origins"].(bool)
		return Summarize(opts)
	},
	"entities":          noParams(Entities),
	"keywords":          noParams(Keywords),
	"emotions":          noParams(Emotions),
	"sentiments":        noParams(Sentiments),
	"highlights":        noParams(Highlights),
	"article-topics":    noParams(Topics),
	"action-items":      noParams(ActionItems),
	"anonymize":         noParams(Anonymize),
	"proofread":         noParams(Proofread),
	"enhance":           noParams(EnhanceTranscription),
	"extract-html":      noParams(HTMLExtractArticle),
	"html-extract-text": noParams(HTMLExtractText),
	"detect-language":   noParams(DetectLanguage),
}

func noParams(build func() nlptypes.Skill) func(map[string]any) (nlptypes.Skill, error) {
	return func(params map[string]any) (nlptypes.Skill, error) {
		skill := build()
		if len(params) > 0 {
			return nlptypes.Skill{}, lexaerr.Configf("skill %q takes no parameters", skill.APIName)
		}
		return skill, nil
	}
}

// intParam reads an integer parameter that may arrive as an int or, after
// JSON or YAML decoding, as a float64.
func intParam(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, lexaerr.Configf("parameter %q must be an integer, got %v", key, v)
		}
		return int(n), nil
	default:
		return 0, lexaerr.Configf("parameter %q must be an integer, got %T", key, v)
	}
}

// FromName builds a catalog skill from its API name and a raw parameter map,
// validating parameters the same way the typed constructors do. Unknown names
// fail with a ConfigError; use Custom for skills outside the catalog.
func FromName(name string, params map[string]any) (nlptypes.Skill, error) {
	build, ok := builders[name]
	if !ok {
		return nlptypes.Skill{}, lexaerr.Configf("unknown skill %q", name)
	}
	return build(params)
}

// Names returns the sorted names of all catalog skills.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
