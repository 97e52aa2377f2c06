package internal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SriniGundelli/ava-hackathon/internal/calcom"
	"github.com/SriniGundelli/ava-hackathon/internal/persist"
	mq "github.com/SriniGundelli/ava-hackathon/internal/rabbitmq"
	"github.com/SriniGundelli/ava-hackathon/internal/twilio"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultTimeZone    = "America/New_York"
	DefaultEventTypeID = 1

	bookingSource     = "ava-ai-assistant"
	preferredAreaCode = "415"
	voiceMethod       = "POST"

	voiceGreeting     = "Thank you for calling Ava AI Talent Assistant. Please hold while we connect you to our AI agent."
	voiceErrorMessage = "We're sorry, but we're experiencing technical difficulties. Please try calling back later."

	defaultListLimit = 10
	maxListLimit     = 100

	publishTimeout = 5 * time.Second
)

var (
	ErrCalcomKeyNotConfigured = errors.New("CALCOM_API_KEY not configured")
	ErrTwilioNotConfigured    = errors.New("Twilio credentials not configured")
	ErrNoNumbersAvailable     = errors.New("no phone numbers available")
)

type (
	// Options carries the provider configuration resolved from the
	// environment. Credentials may be empty; each handler verifies the
	// ones it needs per request.
	Options struct {
		CalcomAPIKey      string
		CalcomEventTypeID int
		TwilioAccountSID  string
		TwilioAuthToken   string
		ElevenLabsSIPURL  string
	}

	webhookService struct {
		logger   *zap.Logger
		opts     Options
		bookings persist.BookingRepo
		setups   persist.TelephonySetupRepo
		callLogs persist.CallLogRepo
		calcom   calcom.Client
		twilio   twilio.Client
		mqclient mq.MQClient
		router   *gin.Engine
	}
)

func NewWebhookService(
	logger *zap.Logger,
	opts Options,
	bookings persist.BookingRepo,
	setups persist.TelephonySetupRepo,
	callLogs persist.CallLogRepo,
	calcomClient calcom.Client,
	twilioClient twilio.Client,
	mqclient mq.MQClient,
) *webhookService {
	svc := &webhookService{
		logger:   logger,
		opts:     opts,
		bookings: bookings,
		setups:   setups,
		callLogs: callLogs,
		calcom:   calcomClient,
		twilio:   twilioClient,
		mqclient: mqclient,
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(cors.New(cors.Config{
		AllowOrigins:              []string{"*"},
		AllowMethods:              []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Authorization"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	svc.router = router
	svc.registerRoutes()
	return svc
}

func (s *webhookService) registerRoutes() {
	webhooks := s.router.Group("/webhooks")
	{
		webhooks.POST("/schedule-call", s.handleScheduleCall)
		webhooks.POST("/setup-twilio", s.handleTwilioSetup)
		webhooks.POST("/voice", s.handleVoice)

		// Non-browser callers preflight without an Origin header, which
		// the CORS middleware ignores. Answer those explicitly.
		webhooks.OPTIONS("/schedule-call", s.preflight)
		webhooks.OPTIONS("/setup-twilio", s.preflight)
		webhooks.OPTIONS("/voice", s.preflight)
	}

	api := s.router.Group("/api")
	{
		api.GET("/call-logs", s.listCallLogs)
		api.GET("/bookings", s.listBookings)
	}
}

func (s *webhookService) preflight(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
	c.Status(http.StatusOK)
}

// publish pushes an event to the recruiting exchange. Delivery is best
// effort: a broker failure is logged and never fails the request.
func (s *webhookService) publish(routingKey string, payload any) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err == nil {
		err = s.mqclient.Publish(ctx, routingKey, body)
	}
	if err != nil {
		s.logger.Warn("failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err))
	}
}

// Router exposes the gin engine for tests.
func (s *webhookService) Router() *gin.Engine {
	return s.router
}

func (s *webhookService) Start(addr string) error {
	s.logger.Info("starting webhook service", zap.String("addr", addr))
	return s.router.Run(addr)
}
