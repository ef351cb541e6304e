package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techkwiz/cache"
	"techkwiz/models"
)

// BackupService exports and restores the whole quiz content set.
type BackupService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBackupService(db *gorm.DB, c *cache.Cache) *BackupService {
	return &BackupService{db: db, cache: c}
}

type QuizDataImportRequest struct {
	Categories []models.QuizCategory `json:"categories" binding:"required"`
	Questions  []models.QuizQuestion `json:"questions" binding:"required"`
}

func (s *BackupService) Export() (*models.QuizDataExport, error) {
	var categories []models.QuizCategory
	if err := s.db.Order("created_at").Find(&categories).Error; err != nil {
		return nil, err
	}
	var questions []models.QuizQuestion
	if err := s.db.Order("created_at").Find(&questions).Error; err != nil {
		return nil, err
	}
	return &models.QuizDataExport{
		Categories: categories,
		Questions:  questions,
		ExportDate: time.Now().UTC(),
	}, nil
}

// Import replaces all categories and questions with the payload. Ids from
// the payload are kept so references survive a round trip; missing ids get
// fresh ones.
func (s *BackupService) Import(ctx context.Context, req *QuizDataImportRequest) (int, int, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.QuizQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to clear questions: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.QuizCategory{}).Error; err != nil {
			return fmt.Errorf("failed to clear categories: %w", err)
		}

		for i := range req.Categories {
			if req.Categories[i].ID == "" {
				req.Categories[i].ID = uuid.NewString()
			}
			if err := tx.Create(&req.Categories[i]).Error; err != nil {
				return fmt.Errorf("failed to import category %s: %w", req.Categories[i].Name, err)
			}
		}
		for i := range req.Questions {
			if req.Questions[i].ID == "" {
				req.Questions[i].ID = uuid.NewString()
			}
			if err := tx.Create(&req.Questions[i]).Error; err != nil {
				return fmt.Errorf("failed to import question %s: %w", req.Questions[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	s.cache.InvalidateQuizData(ctx)
	return len(req.Categories), len(req.Questions), nil
}
