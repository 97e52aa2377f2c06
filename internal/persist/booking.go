package persist

import (
	"errors"

	"github.com/SriniGundelli/ava-hackathon/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCreateBookingFailed = errors.New("failed to create booking")
	ErrListBookingsFailed  = errors.New("failed to get booking list")
)

type (
	BookingRepo interface {
		Create(booking *models.Booking) (string, error)
		List(limit int) (*[]models.Booking, error)
	}
	bookingRepository struct {
		db *gorm.DB
	}
)

func (br *bookingRepository) Create(booking *models.Booking) (string, error) {
	booking.ID = uuid.New().String()
	result := br.db.Create(booking)

	if result.Error != nil || result.RowsAffected == 0 {
		return "", ErrCreateBookingFailed
	}
	return booking.ID, nil
}

func (br *bookingRepository) List(limit int) (*[]models.Booking, error) {
	var bookings []models.Booking
	result := br.db.Order("created_at desc").Limit(limit).Find(&bookings)

	if result.Error != nil {
		return nil, ErrListBookingsFailed
	}
	return &bookings, nil
}

func NewBookingRepository(db *gorm.DB) BookingRepo {
	return &bookingRepository{db}
}
