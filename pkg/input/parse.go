package input

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/lexalang/lexa-go/pkg/lexaerr"
	nlptypes "github.com/lexalang/lexa-go/pkg/types/nlp"
)

var (
	srtHeaderRe = regexp.MustCompile(`\d+\r?\n\d{1,2}:\d{2}:\d{2}[,.]\d{1,3} --> \d{1,2}:\d{2}:\d{2}[,.]\d{1,3}\r?\n`)

	// "[3:07 PM, 3/15/2022] Adam: ..." style prefix; requires a closing
	// bracket or a date slash so a plain "Speaker:" is not eaten.
	datedTimestampRe = regexp.MustCompile(`^\s*\[\s*([0-9:,\sAPM/]{4,23})\]\s*`)
	// "[12:30] ..." or "12:30:45.5 ..." style prefix.
	clockTimestampRe = regexp.MustCompile(`^\s*\[?(\d{1,2}:\d{1,2}(?::\d{1,2})?(?:\.\d*)?)\]?\s+`)

	// A speaker signature on its own line, in caps.
	capsSpeakerRe = regexp.MustCompile(`^[ A-Z_-]{3,20}$`)
	// After a timestamp was stripped, mixed case is accepted too.
	bareSpeakerRe = regexp.MustCompile(`^[ A-Za-z_-]{3,20}$`)
)

// ParseConversation parses a transcript into a Conversation. Accepted forms:
// the service's conversation JSON, SRT captions, and speaker-prefixed text
// ("Speaker: utterance" lines, with optional leading timestamps, utterances
// continuing on following lines). Returns an UnsupportedInputError when the
// text matches none of these.
func ParseConversation(text string) (Conversation, error) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "[") && json.Valid([]byte(trimmed)) {
		var utterances []nlptypes.Utterance
		if err := json.Unmarshal([]byte(trimmed), &utterances); err == nil {
			return NewConversation(utterances...), nil
		}
	}

	if srtHeaderRe.MatchString(trimmed) {
		return parseSRT(trimmed), nil
	}

	return parseTranscript(trimmed)
}

// parseSRT turns caption blocks into single-speaker utterances. SRT carries
// no speaker identities, so every caption is attributed to "SPEAKER".
func parseSRT(text string) Conversation {
	var utterances []nlptypes.Utterance
	for _, chunk := range srtHeaderRe.Split(text, -1) {
		line := strings.TrimSpace(chunk)
		if line == "" {
			continue
		}
		utterances = append(utterances, nlptypes.Utterance{
			Speaker: "SPEAKER",
			Text:    strings.ReplaceAll(line, "\n", " "),
		})
	}
	return NewConversation(utterances...)
}

type speakerLine struct {
	speaker   string
	text      string
	timestamp string
	hasText   bool
}

func parseTranscript(text string) (Conversation, error) {
	var utterances []nlptypes.Utterance
	waitForText := false

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if waitForText {
			utterances[len(utterances)-1].Text = strings.TrimSpace(line)
			waitForText = false
			continue
		}

		info := parseSpeakerLine(line)
		if info == nil {
			if len(utterances) == 0 {
				return Conversation{}, lexaerr.UnsupportedInputf("invalid conversation format at line %d", i)
			}
			// Continuation of the previous utterance.
			utterances[len(utterances)-1].Text += "\n" + strings.TrimSpace(line)
			continue
		}

		utterances = append(utterances, nlptypes.Utterance{
			Speaker:   info.speaker,
			Text:      info.text,
			Timestamp: info.timestamp,
		})
		waitForText = !info.hasText
	}

	// A trailing signature with no utterance text is noise, not a turn.
	if n := len(utterances); n > 0 && strings.TrimSpace(utterances[n-1].Text) == "" {
		utterances = utterances[:n-1]
	}
	return NewConversation(utterances...), nil
}

func parseSpeakerLine(line string) *speakerLine {
	info := &speakerLine{}

	rest := line
	if m := datedTimestampRe.FindStringSubmatch(rest); m != nil {
		info.timestamp = strings.TrimSpace(m[1])
		rest = rest[len(m[0]):]
	} else if m := clockTimestampRe.FindStringSubmatch(rest); m != nil {
		info.timestamp = strings.TrimSpace(m[1])
		rest = rest[len(m[0]):]
	}

	speakerRe := capsSpeakerRe
	if info.timestamp != "" {
		speakerRe = bareSpeakerRe
	}
	if speakerRe.MatchString(rest) {
		info.speaker = strings.TrimSpace(rest)
		return info
	}

	colon := strings.Index(rest, ":")
	if colon <= 0 || colon > 40 {
		return nil
	}

	after := rest[colon+1:]
	if after != "" && !strings.ContainsAny(after[:1], " \t") {
		// No whitespace after the colon: likely not a speaker signature
		// (e.g. a URL), fail this line.
		return nil
	}

	info.speaker = strings.TrimSpace(rest[:colon])
	info.text = strings.TrimSpace(after)
	info.hasText = info.text != ""
	return info
}
