package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"techkwiz/cache"
	"techkwiz/models"
)

type CategoryService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCategoryService(db *gorm.DB, c *cache.Cache) *CategoryService {
	return &CategoryService{db: db, cache: c}
}

type CategoryCreateRequest struct {
	Name          string   `json:"name" binding:"required"`
	Icon          string   `json:"icon"`
	Color         string   `json:"color"`
	Description   string   `json:"description"`
	Subcategories []string `json:"subcategories"`
	EntryFee      int      `json:"entry_fee" binding:"gte=0"`
	PrizePool     int      `json:"prize_pool" binding:"gte=0"`

	TimerEnabled               *bool `json:"timer_enabled"`
	TimerSeconds               *int  `json:"timer_seconds" binding:"omitempty,gte=5,lte=300"`
	ShowTimerWarning           *bool `json:"show_timer_warning"`
	AutoAdvanceOnTimeout       *bool `json:"auto_advance_on_timeout"`
	ShowCorrectAnswerOnTimeout *bool `json:"show_correct_answer_on_timeout"`
}

type CategoryUpdateRequest struct {
	Name          *string   `json:"name"`
	Icon          *string   `json:"icon"`
	Color         *string   `json:"color"`
	Description   *string   `json:"description"`
	Subcategories *[]string `json:"subcategories"`
	EntryFee      *int      `json:"entry_fee" binding:"omitempty,gte=0"`
	PrizePool     *int      `json:"prize_pool" binding:"omitempty,gte=0"`

	TimerEnabled               *bool `json:"timer_enabled"`
	TimerSeconds               *int  `json:"timer_seconds" binding:"omitempty,gte=5,lte=300"`
	ShowTimerWarning           *bool `json:"show_timer_warning"`
	AutoAdvanceOnTimeout       *bool `json:"auto_advance_on_timeout"`
	ShowCorrectAnswerOnTimeout *bool `json:"show_correct_answer_on_timeout"`
}

// List returns all categories, served from cache when possible.
func (s *CategoryService) List(ctx context.Context) ([]models.QuizCategory, error) {
	var categories []models.QuizCategory
	if s.cache.GetJSON(ctx, cache.CategoriesKey, &categories) {
		return categories, nil
	}

	if err := s.db.Order("created_at").Find(&categories).Error; err != nil {
		return nil, err
	}
	s.cache.SetJSON(ctx, cache.CategoriesKey, categories, cache.CategoriesTTL)
	return categories, nil
}

func (s *CategoryService) Get(id string) (*models.QuizCategory, error) {
	var category models.QuizCategory
	if err := s.db.Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryCreateRequest) (*models.QuizCategory, error) {
	category := models.QuizCategory{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Icon:          req.Icon,
		Color:         req.Color,
		Description:   req.Description,
		Subcategories: datatypes.NewJSONSlice(req.Subcategories),
		EntryFee:      req.EntryFee,
		PrizePool:     req.PrizePool,

		TimerEnabled:               boolOr(req.TimerEnabled, true),
		TimerSeconds:               intOr(req.TimerSeconds, 30),
		ShowTimerWarning:           boolOr(req.ShowTimerWarning, true),
		AutoAdvanceOnTimeout:       boolOr(req.AutoAdvanceOnTimeout, true),
		ShowCorrectAnswerOnTimeout: boolOr(req.ShowCorrectAnswerOnTimeout, true),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	s.cache.InvalidateQuizData(ctx)
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req *CategoryUpdateRequest) (*models.QuizCategory, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Subcategories != nil {
		category.Subcategories = datatypes.NewJSONSlice(*req.Subcategories)
	}
	if req.EntryFee != nil {
		category.EntryFee = *req.EntryFee
	}
	if req.PrizePool != nil {
		category.PrizePool = *req.PrizePool
	}
	if req.TimerEnabled != nil {
		category.TimerEnabled = *req.TimerEnabled
	}
	if req.TimerSeconds != nil {
		category.TimerSeconds = *req.TimerSeconds
	}
	if req.ShowTimerWarning != nil {
		category.ShowTimerWarning = *req.ShowTimerWarning
	}
	if req.AutoAdvanceOnTimeout != nil {
		category.AutoAdvanceOnTimeout = *req.AutoAdvanceOnTimeout
	}
	if req.ShowCorrectAnswerOnTimeout != nil {
		category.ShowCorrectAnswerOnTimeout = *req.ShowCorrectAnswerOnTimeout
	}

	if err := s.db.Save(category).Error; err != nil {
		return nil, err
	}
	s.cache.InvalidateQuizData(ctx)
	return category, nil
}

// Delete removes a category and best-effort deletes its questions. The
// cascade is not transactional: a failed question delete is logged, never
// rolled back.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(category).Error; err != nil {
		return err
	}

	if err := s.db.Where("category = ?", id).Delete(&models.QuizQuestion{}).Error; err != nil {
		log.Printf("Cascade delete of questions for category %s failed: %v", id, err)
	}

	s.cache.InvalidateQuizData(ctx)
	return nil
}

// TimerConfig projects the timer settings out of a category.
func (s *CategoryService) TimerConfig(id string) (*models.TimerConfig, error) {
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return &models.TimerConfig{
		CategoryID:                 category.ID,
		CategoryName:               category.Name,
		TimerEnabled:               category.TimerEnabled,
		TimerSeconds:               category.TimerSeconds,
		ShowTimerWarning:           category.ShowTimerWarning,
		AutoAdvanceOnTimeout:       category.AutoAdvanceOnTimeout,
		ShowCorrectAnswerOnTimeout: category.ShowCorrectAnswerOnTimeout,
	}, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
