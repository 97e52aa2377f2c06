package persist

import (
	"errors"

	"github.com/SriniGundelli/ava-hackathon/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCreateSetupFailed = errors.New("failed to create telephony setup")
)

type (
	TelephonySetupRepo interface {
		Create(setup *models.TelephonySetup) (string, error)
	}
	telephonySetupRepository struct {
		db *gorm.DB
	}
)

func (sr *telephonySetupRepository) Create(setup *models.TelephonySetup) (string, error) {
	setup.ID = uuid.New().String()
	result := sr.db.Create(setup)

	if result.Error != nil || result.RowsAffected == 0 {
		return "", ErrCreateSetupFailed
	}
	return setup.ID, nil
}

func NewTelephonySetupRepository(db *gorm.DB) TelephonySetupRepo {
	return &telephonySetupRepository{db}
}
