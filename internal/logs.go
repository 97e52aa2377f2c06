package internal

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Operator-facing read endpoints over the append-only tables.

func (s *webhookService) listCallLogs(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	callSID := c.Query("call_sid")

	entries, err := s.callLogs.List(limit, callSID)
	if err != nil {
		s.listError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(*entries),
		"call_logs": entries,
	})
}

func (s *webhookService) listBookings(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	bookings, err := s.bookings.List(limit)
	if err != nil {
		s.listError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(*bookings),
		"bookings": bookings,
	})
}

func (s *webhookService) listError(c *gin.Context, err error) {
	s.logger.Error("list query failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultListLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
