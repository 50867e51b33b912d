package logfields

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHelperKeyNames verifies helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attr    slog.Attr
		attrKey string
		attrVal string
	}{
		{"BuildID", BuildID("b1"), KeyBuildID, "b1"},
		{"Mode", Mode("index"), KeyMode, "index"},
		{"Path", Path("posts/a.md"), KeyPath, "posts/a.md"},
		{"Output", Output("index.html"), KeyOutput, "index.html"},
		{"Template", Template("page.html"), KeyTemplate, "page.html"},
		{"URL", URL("http://x/a"), KeyURL, "http://x/a"},
		{"Error", Error(errors.New("boom")), KeyError, "boom"},
		{"NilError", Error(nil), KeyError, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.attrKey, tc.attr.Key)
			assert.Equal(t, tc.attrVal, tc.attr.Value.String())
		})
	}
}

func TestNumericHelpers(t *testing.T) {
	assert.Equal(t, int64(3), Count(3).Value.Int64())
	assert.InDelta(t, 1.5, DurationMS(1.5).Value.Float64(), 0.0001)
}
