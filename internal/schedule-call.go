package internal

import (
	"net/http"

	"github.com/SriniGundelli/ava-hackathon/internal/calcom"
	"github.com/SriniGundelli/ava-hackathon/internal/models"
	mq "github.com/SriniGundelli/ava-hackathon/internal/rabbitmq"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type (
	ScheduleCallRequest struct {
		CandidateName  string `json:"candidate_name"`
		CandidateEmail string `json:"candidate_email"`
		CandidatePhone string `json:"candidate_phone"`
		TimeZone       string `json:"time_zone"`
	}
)

// handleScheduleCall books the first available Cal.com slot for a
// candidate and records the booking.
func (s *webhookService) handleScheduleCall(c *gin.Context) {
	var req ScheduleCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.CandidateName == "" || req.CandidateEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields: candidate_name and candidate_email",
		})
		return
	}

	if req.TimeZone == "" {
		req.TimeZone = DefaultTimeZone
	}

	if s.opts.CalcomAPIKey == "" {
		s.scheduleError(c, ErrCalcomKeyNotConfigured)
		return
	}

	ctx := c.Request.Context()

	slots, err := s.calcom.AvailableSlots(ctx)
	if err != nil {
		s.scheduleError(c, err)
		return
	}

	if len(slots) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No available slots found",
			"message": "Please try again later or contact us directly",
		})
		return
	}

	// No ranking; the provider's first slot wins.
	slot := slots[0]

	booking, err := s.calcom.CreateBooking(ctx, &calcom.BookingRequest{
		Start:       slot.Time,
		EventTypeID: s.opts.CalcomEventTypeID,
		Attendee: calcom.Attendee{
			Name:     req.CandidateName,
			Email:    req.CandidateEmail,
			TimeZone: req.TimeZone,
		},
		Metadata: map[string]string{
			"phone":  req.CandidatePhone,
			"source": bookingSource,
		},
	})
	if err != nil {
		s.scheduleError(c, err)
		return
	}

	row := &models.Booking{
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CandidatePhone: req.CandidatePhone,
		ScheduledTime:  slot.Time,
		BookingUID:     booking.UID,
		MeetingURL:     booking.MeetingURL,
		TimeZone:       req.TimeZone,
	}
	if _, err := s.bookings.Create(row); err != nil {
		s.scheduleError(c, err)
		return
	}

	s.publish(mq.BookingCreatedKey, row)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": gin.H{
			"candidate_name":  req.CandidateName,
			"candidate_email": req.CandidateEmail,
			"scheduled_time":  slot.Time,
			"meeting_url":     booking.MeetingURL,
			"booking_uid":     booking.UID,
		},
	})
}

func (s *webhookService) scheduleError(c *gin.Context, err error) {
	s.logger.Error("schedule call failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}
