package lexaerr

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigfRoundTrip(t *testing.T) {
	err := Configf("skill %q requires a positive length, got %d", "summarize", -1)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "summarize")
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestFromStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   TransportKind
	}{
		{"bad request", 400, KindInput},
		{"unauthorized", 401, KindAPIKey},
		{"forbidden", 403, KindAPIKey},
		{"server error", 500, KindServer},
		{"unavailable", 503, KindServer},
		{"unclassified", 418, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, "boom")

			var trErr *TransportError
			require.ErrorAs(t, err, &trErr)
			assert.Equal(t, tt.kind, trErr.Kind)
			assert.Equal(t, tt.status, trErr.StatusCode)
		})
	}
}

func TestErrorsSurviveWrapping(t *testing.T) {
	err := pkgerrors.Wrap(MalformedResponsef("block %d references unknown parent", 3), "building output")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Message, "unknown parent")

	var notFound *LabelNotFoundError
	assert.False(t, pkgerrors.As(err, &notFound))
}

func TestLabelNotFoundMessage(t *testing.T) {
	err := &LabelNotFoundError{Skill: "emotions"}
	assert.Contains(t, err.Error(), `"emotions"`)
}

func TestMissingAPIKey(t *testing.T) {
	var trErr *TransportError
	require.ErrorAs(t, MissingAPIKey(), &trErr)
	assert.Equal(t, KindAPIKey, trErr.Kind)
	assert.Equal(t, 60001, trErr.Code)
}
