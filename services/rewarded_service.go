package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techkwiz/models"
)

// HomepageScope is the empty scope: a rewarded config row with no category.
const HomepageScope = ""

type RewardedConfigService struct {
	db *gorm.DB
}

func NewRewardedConfigService(db *gorm.DB) *RewardedConfigService {
	return &RewardedConfigService{db: db}
}

type RewardedConfigUpdateRequest struct {
	CategoryName            *string `json:"category_name"`
	TriggerAfterQuestions   *int    `json:"trigger_after_questions" binding:"omitempty,gte=1"`
	CoinReward              *int    `json:"coin_reward" binding:"omitempty,gte=0"`
	IsActive                *bool   `json:"is_active"`
	ShowOnInsufficientCoins *bool   `json:"show_on_insufficient_coins"`
	ShowDuringQuiz          *bool   `json:"show_during_quiz"`
	EnableAnalytics         *bool   `json:"enable_analytics"`
}

func (s *RewardedConfigService) List() ([]models.RewardedPopupConfig, error) {
	var configs []models.RewardedPopupConfig
	if err := s.db.Order("created_at").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// Resolve returns the config for a scope, creating and persisting the
// documented default on first access. The default is stored immediately so a
// later independent read sees the same values.
func (s *RewardedConfigService) Resolve(scope string) (*models.RewardedPopupConfig, error) {
	config, err := s.find(scope)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := s.defaultConfig(scope)
	if err := s.db.Create(def).Error; err != nil {
		// Persisting the default is best-effort; losing it only means the
		// next read creates it again.
		log.Printf("Failed to persist default rewarded config for scope %q: %v", scope, err)
		if existing, ferr := s.find(scope); ferr == nil {
			return existing, nil
		}
	}
	return def, nil
}

// Update merges the provided fields into the existing or newly-defaulted row.
// Re-running the same update is idempotent.
func (s *RewardedConfigService) Update(scope string, req *RewardedConfigUpdateRequest) (*models.RewardedPopupConfig, error) {
	config, err := s.find(scope)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		config = s.defaultConfig(scope)
		if err := s.db.Create(config).Error; err != nil {
			return nil, err
		}
	}

	if req.CategoryName != nil && *req.CategoryName != "" {
		config.CategoryName = *req.CategoryName
	}
	if req.TriggerAfterQuestions != nil {
		config.TriggerAfterQuestions = *req.TriggerAfterQuestions
	}
	if req.CoinReward != nil {
		config.CoinReward = *req.CoinReward
	}
	if req.IsActive != nil {
		config.IsActive = *req.IsActive
	}
	if req.ShowOnInsufficientCoins != nil {
		config.ShowOnInsufficientCoins = *req.ShowOnInsufficientCoins
	}
	if req.ShowDuringQuiz != nil {
		config.ShowDuringQuiz = *req.ShowDuringQuiz
	}
	if req.EnableAnalytics != nil {
		config.EnableAnalytics = *req.EnableAnalytics
	}
	if config.CategoryName == "" {
		config.CategoryName = s.categoryName(scope)
	}

	if err := s.db.Save(config).Error; err != nil {
		return nil, err
	}
	return config, nil
}

func (s *RewardedConfigService) find(scope string) (*models.RewardedPopupConfig, error) {
	var config models.RewardedPopupConfig
	query := s.db
	if scope == HomepageScope {
		query = query.Where("category_id IS NULL")
	} else {
		query = query.Where("category_id = ?", scope)
	}
	if err := query.First(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *RewardedConfigService) defaultConfig(scope string) *models.RewardedPopupConfig {
	config := &models.RewardedPopupConfig{
		ID:                      uuid.NewString(),
		CategoryName:            s.categoryName(scope),
		TriggerAfterQuestions:   5,
		CoinReward:              200,
		IsActive:                true,
		ShowOnInsufficientCoins: true,
		ShowDuringQuiz:          true,
	}
	if scope != HomepageScope {
		id := scope
		config.CategoryID = &id
	}
	return config
}

func (s *RewardedConfigService) categoryName(scope string) string {
	if scope == HomepageScope {
		return "Homepage"
	}
	var category models.QuizCategory
	if err := s.db.Where("id = ?", scope).First(&category).Error; err != nil {
		return fmt.Sprintf("Category %s", scope)
	}
	return category.Name
}
