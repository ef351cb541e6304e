package services

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techkwiz/models"
)

// StatusService backs the /status health fixtures used by uptime probes.
type StatusService struct {
	db *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{db: db}
}

type StatusCheckRequest struct {
	ClientName string `json:"client_name" binding:"required"`
}

func (s *StatusService) Create(req *StatusCheckRequest) (*models.StatusCheck, error) {
	check := models.StatusCheck{
		ID:         uuid.NewString(),
		ClientName: req.ClientName,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.db.Create(&check).Error; err != nil {
		return nil, err
	}
	return &check, nil
}

func (s *StatusService) List() ([]models.StatusCheck, error) {
	var checks []models.StatusCheck
	if err := s.db.Order("timestamp").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
