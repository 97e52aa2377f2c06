package twiml

import (
	"encoding/xml"
)

// Minimal TwiML builder for the voice webhook. Only the verbs the
// inbound-call flow needs are modeled, so no provider SDK is required.

const defaultVoice = "alice"

// fallback is returned if encoding ever fails; the voice webhook must
// always answer with valid markup.
const fallback = xml.Header + "<Response><Hangup/></Response>"

type (
	Response struct {
		XMLName xml.Name `xml:"Response"`
		Verbs   []any    `xml:",any"`
	}

	Say struct {
		XMLName xml.Name `xml:"Say"`
		Voice   string   `xml:"voice,attr,omitempty"`
		Text    string   `xml:",chardata"`
	}

	Redirect struct {
		XMLName xml.Name `xml:"Redirect"`
		URL     string   `xml:",chardata"`
	}

	Hangup struct {
		XMLName xml.Name `xml:"Hangup"`
	}
)

// Voice renders the greeting-and-redirect markup for an answered call.
func Voice(greeting, redirectURL string) string {
	return render(Response{Verbs: []any{
		Say{Voice: defaultVoice, Text: greeting},
		Redirect{URL: redirectURL},
	}})
}

// Reject renders the apology-and-hangup markup used on internal failure.
func Reject(message string) string {
	return render(Response{Verbs: []any{
		Say{Voice: defaultVoice, Text: message},
		Hangup{},
	}})
}

func render(r Response) string {
	out, err := xml.MarshalIndent(r, "", "  ")
	if err != nil {
		return fallback
	}
	return xml.Header + string(out)
}
