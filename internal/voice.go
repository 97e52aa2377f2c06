package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/SriniGundelli/ava-hackathon/internal/models"
	mq "github.com/SriniGundelli/ava-hackathon/internal/rabbitmq"
	"github.com/SriniGundelli/ava-hackathon/internal/twiml"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const twimlContentType = "text/xml"

// handleVoice logs every inbound call and answers with TwiML redirecting
// the caller to the AI voice agent. This handler speaks markup in both
// directions, never JSON, even on failure.
func (s *webhookService) handleVoice(c *gin.Context) {
	payload := voicePayload(c)

	raw, err := json.Marshal(payload)
	if err != nil {
		s.voiceError(c, err)
		return
	}

	entry := &models.CallLog{
		CallSID:     payload["CallSid"],
		FromNumber:  payload["From"],
		ToNumber:    payload["To"],
		CallStatus:  payload["CallStatus"],
		WebhookData: string(raw),
	}
	if _, err := s.callLogs.Create(entry); err != nil {
		s.voiceError(c, err)
		return
	}

	s.publish(mq.CallReceivedKey, entry)

	markup := twiml.Voice(voiceGreeting, s.opts.ElevenLabsSIPURL)
	c.Data(http.StatusOK, twimlContentType, []byte(markup))
}

func (s *webhookService) voiceError(c *gin.Context, err error) {
	s.logger.Error("voice webhook failed", zap.Error(err))
	c.Data(http.StatusInternalServerError, twimlContentType, []byte(twiml.Reject(voiceErrorMessage)))
}

// voicePayload flattens the webhook body into string fields. Twilio posts
// form-encoded parameters; JSON payloads are accepted as well. A body
// that cannot be parsed yields an empty map, not an error, since the
// call must be logged regardless.
func voicePayload(c *gin.Context) map[string]string {
	payload := map[string]string{}

	if strings.Contains(c.ContentType(), "json") {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err == nil {
			for k, v := range body {
				payload[k] = fmt.Sprint(v)
			}
		}
		return payload
	}

	if err := c.Request.ParseForm(); err == nil {
		for k, values := range c.Request.PostForm {
			if len(values) > 0 {
				payload[k] = values[0]
			}
		}
	}
	return payload
}
