package twiml_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/SriniGundelli/ava-hackathon/internal/twiml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoice(t *testing.T) {
	markup := twiml.Voice("Please hold.", "sip:ava@myagent.sip.11.ai")

	assert.True(t, strings.HasPrefix(markup, xml.Header))
	assert.Contains(t, markup, `<Say voice="alice">Please hold.</Say>`)
	assert.Contains(t, markup, "<Redirect>sip:ava@myagent.sip.11.ai</Redirect>")
	assert.NotContains(t, markup, "<Hangup")
}

func TestVoice_EmptyRedirect(t *testing.T) {
	markup := twiml.Voice("Please hold.", "")

	// An unset redirect target still renders the verb.
	assert.Contains(t, markup, "<Redirect></Redirect>")
}

func TestReject(t *testing.T) {
	markup := twiml.Reject("Please call back later.")

	assert.Contains(t, markup, `<Say voice="alice">Please call back later.</Say>`)
	assert.Contains(t, markup, "<Hangup")
	assert.NotContains(t, markup, "<Redirect")
}

func TestMarkupIsWellFormed(t *testing.T) {
	for _, markup := range []string{
		twiml.Voice("greeting", "sip:ava@myagent.sip.11.ai"),
		twiml.Reject("apology"),
	} {
		var parsed struct {
			XMLName xml.Name
		}
		require.NoError(t, xml.Unmarshal([]byte(markup), &parsed))
		assert.Equal(t, "Response", parsed.XMLName.Local)
	}
}
