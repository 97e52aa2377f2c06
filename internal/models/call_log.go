package models

import (
	"gorm.io/gorm"
)

type (
	CallLog struct {
		gorm.Model
		ID          string `gorm:"primary_key"`
		CallSID     string `json:"call_sid" gorm:"column:call_sid"`
		FromNumber  string `json:"from_number"`
		ToNumber    string `json:"to_number"`
		CallStatus  string `json:"call_status"`
		WebhookData string `json:"webhook_data"`
	}
)
