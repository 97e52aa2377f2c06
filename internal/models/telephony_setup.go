package models

import (
	"gorm.io/gorm"
)

type (
	TelephonySetup struct {
		gorm.Model
		ID               string `gorm:"primary_key"`
		TrunkSID         string `json:"trunk_sid" gorm:"column:trunk_sid"`
		PhoneNumber      string `json:"phone_number"`
		FriendlyName     string `json:"friendly_name"`
		ElevenLabsDomain string `json:"elevenlabs_domain" gorm:"column:elevenlabs_domain"`
		VoiceWebhookURL  string `json:"voice_webhook_url" gorm:"column:voice_webhook_url"`
	}
)

// TableName keeps the table compatible with the original schema.
func (TelephonySetup) TableName() string {
	return "twilio_setup"
}
