package models

import (
	"gorm.io/gorm"
)

type (
	Booking struct {
		gorm.Model
		ID             string `gorm:"primary_key"`
		CandidateName  string `json:"candidate_name"`
		CandidateEmail string `json:"candidate_email"`
		CandidatePhone string `json:"candidate_phone"`
		ScheduledTime  string `json:"scheduled_time"`
		BookingUID     string `json:"booking_uid" gorm:"column:booking_uid"`
		MeetingURL     string `json:"meeting_url" gorm:"column:meeting_url"`
		TimeZone       string `json:"time_zone"`
	}
)
