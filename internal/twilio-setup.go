package internal

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/SriniGundelli/ava-hackathon/internal/models"
	"github.com/SriniGundelli/ava-hackathon/internal/twilio"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type (
	TwilioSetupRequest struct {
		FriendlyName     string `json:"friendlyName"`
		ElevenLabsDomain string `json:"elevenLabsDomain"`
		VoiceWebhookURL  string `json:"voiceWebhookUrl"`
	}
)

// handleTwilioSetup provisions a SIP trunk, points it at the ElevenLabs
// voice domain and attaches a purchased phone number.
func (s *webhookService) handleTwilioSetup(c *gin.Context) {
	var req TwilioSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if s.opts.TwilioAccountSID == "" || s.opts.TwilioAuthToken == "" {
		s.setupError(c, ErrTwilioNotConfigured)
		return
	}

	ctx := c.Request.Context()

	domainName := trunkDomain(req.FriendlyName)
	trunk, err := s.twilio.CreateTrunk(ctx, req.FriendlyName, domainName)
	if err != nil {
		s.setupError(c, err)
		return
	}

	sipURI := fmt.Sprintf("sip:%s.sip.11.ai", req.ElevenLabsDomain)
	err = s.twilio.CreateOriginationURL(ctx, trunk.SID, &twilio.OriginationURLParams{
		FriendlyName: "ElevenLabs Voice Handler",
		SipURL:       sipURI,
		Priority:     10,
		Weight:       10,
		Enabled:      true,
	})
	if err != nil {
		s.setupError(c, err)
		return
	}

	number, err := s.purchaseNumber(ctx, trunk.SID, req.VoiceWebhookURL)
	if err != nil {
		// Surface purchase failures as one generic provisioning error.
		s.logger.Error("phone number purchase failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Setup failed",
			"message": "Failed to purchase phone number",
		})
		return
	}

	row := &models.TelephonySetup{
		TrunkSID:         trunk.SID,
		PhoneNumber:      number.PhoneNumber,
		FriendlyName:     req.FriendlyName,
		ElevenLabsDomain: req.ElevenLabsDomain,
		VoiceWebhookURL:  req.VoiceWebhookURL,
	}
	if _, err := s.setups.Create(row); err != nil {
		s.setupError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"setup": gin.H{
			"trunkSid":         trunk.SID,
			"phoneNumber":      number.PhoneNumber,
			"voiceWebhookUrl":  req.VoiceWebhookURL,
			"elevenLabsSipUri": sipURI,
		},
	})
}

// purchaseNumber tries the preferred area code first, then any available
// US local number.
func (s *webhookService) purchaseNumber(ctx context.Context, trunkSID, voiceWebhookURL string) (*twilio.IncomingPhoneNumber, error) {
	numbers, err := s.twilio.SearchAvailableNumbers(ctx, preferredAreaCode, 1)
	if err != nil {
		return nil, err
	}

	if len(numbers) == 0 {
		numbers, err = s.twilio.SearchAvailableNumbers(ctx, "", 1)
		if err != nil {
			return nil, err
		}
		if len(numbers) == 0 {
			return nil, ErrNoNumbersAvailable
		}
	}

	return s.twilio.PurchaseNumber(ctx, &twilio.PurchaseParams{
		PhoneNumber: numbers[0].PhoneNumber,
		TrunkSID:    trunkSID,
		VoiceURL:    voiceWebhookURL,
		VoiceMethod: voiceMethod,
	})
}

func (s *webhookService) setupError(c *gin.Context, err error) {
	s.logger.Error("twilio setup failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Setup failed",
		"message": err.Error(),
	})
}

// trunkDomain normalizes a friendly name into a Twilio SIP domain.
func trunkDomain(friendlyName string) string {
	slug := strings.Join(strings.Fields(strings.ToLower(friendlyName)), "-")
	return slug + ".sip.twilio.com"
}
