package persist

import (
	"errors"

	"github.com/SriniGundelli/ava-hackathon/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCreateCallLogFailed = errors.New("failed to create call log")
	ErrListCallLogsFailed  = errors.New("failed to get call log list")
)

type (
	CallLogRepo interface {
		Create(entry *models.CallLog) (string, error)
		List(limit int, callSID string) (*[]models.CallLog, error)
	}
	callLogRepository struct {
		db *gorm.DB
	}
)

func (cr *callLogRepository) Create(entry *models.CallLog) (string, error) {
	entry.ID = uuid.New().String()
	result := cr.db.Create(entry)

	if result.Error != nil || result.RowsAffected == 0 {
		return "", ErrCreateCallLogFailed
	}
	return entry.ID, nil
}

func (cr *callLogRepository) List(limit int, callSID string) (*[]models.CallLog, error) {
	var entries []models.CallLog
	query := cr.db.Order("created_at desc").Limit(limit)
	if callSID != "" {
		query = query.Where("call_sid = ?", callSID)
	}
	result := query.Find(&entries)

	if result.Error != nil {
		return nil, ErrListCallLogsFailed
	}
	return &entries, nil
}

func NewCallLogRepository(db *gorm.DB) CallLogRepo {
	return &callLogRepository{db}
}
