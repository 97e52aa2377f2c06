package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/SriniGundelli/ava-hackathon/internal"
	"github.com/SriniGundelli/ava-hackathon/internal/calcom"
	"github.com/SriniGundelli/ava-hackathon/internal/models"
	"github.com/SriniGundelli/ava-hackathon/internal/persist"
	mq "github.com/SriniGundelli/ava-hackathon/internal/rabbitmq"
	"github.com/SriniGundelli/ava-hackathon/internal/twilio"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type (
	Options struct {
		AMQPAddress string
		DBHost      string
		DBName      string
		DBUsername  string
		DBPassword  string
		DBPort      string
		Port        string
	}
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	options := &Options{
		AMQPAddress: mustGetEnv("AMQP_ADDRESS"),
		DBHost:      mustGetEnv("DB_HOST"),
		DBName:      mustGetEnv("DB_NAME"),
		DBUsername:  mustGetEnv("DB_USERNAME"),
		DBPassword:  mustGetEnv("DB_PASSWORD"),
		DBPort:      mustGetEnv("DB_PORT"),
		Port:        mustGetEnv("PORT"),
	}

	svcOptions := internal.Options{
		CalcomAPIKey:      os.Getenv("CALCOM_API_KEY"),
		CalcomEventTypeID: internal.DefaultEventTypeID,
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		ElevenLabsSIPURL:  os.Getenv("ELEVENLABS_SIP_URL"),
	}
	if eventTypeID, err := strconv.Atoi(os.Getenv("CALCOM_EVENT_TYPE_ID")); err == nil {
		svcOptions.CalcomEventTypeID = eventTypeID
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger, %v", err)
	}
	defer logger.Sync()

	db := bootDB(options)
	svc := internal.NewWebhookService(
		logger,
		svcOptions,
		persist.NewBookingRepository(db),
		persist.NewTelephonySetupRepository(db),
		persist.NewCallLogRepository(db),
		calcom.NewClient(svcOptions.CalcomAPIKey),
		twilio.NewClient(svcOptions.TwilioAccountSID, svcOptions.TwilioAuthToken),
		mq.NewRecruitingMQClient(bootMQ(options)),
	)

	if err := svc.Start(fmt.Sprintf(":%s", options.Port)); err != nil {
		log.Panicf("failed to launch webhook service: %v", err)
	}
}

func bootDB(options *Options) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		options.DBHost, options.DBUsername, options.DBPassword, options.DBName, options.DBPort)

	db, err := gorm.Open(postgres.Open(dsn))
	if err != nil {
		log.Fatalf("failed to open db connection, %v", err)
	}
	db.AutoMigrate(&models.Booking{}, &models.TelephonySetup{}, &models.CallLog{})
	return db
}

func bootMQ(options *Options) *amqp.Connection {
	conn, err := amqp.Dial(options.AMQPAddress)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ, %v", err)
	}
	return conn
}

func mustGetEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		log.Fatalf("failed to get env for: %s", key)
	}
	return v
}
