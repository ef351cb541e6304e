package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techkwiz/models"
)

// ContentService owns the script-injection and ad-slot registries.
type ContentService struct {
	db *gorm.DB
}

func NewContentService(db *gorm.DB) *ContentService {
	return &ContentService{db: db}
}

type ScriptCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	ScriptCode string `json:"script_code" binding:"required"`
	Placement  string `json:"placement" binding:"required,oneof=header footer"`
	IsActive   *bool  `json:"is_active"`
}

type ScriptUpdateRequest struct {
	Name       *string `json:"name"`
	ScriptCode *string `json:"script_code"`
	Placement  *string `json:"placement" binding:"omitempty,oneof=header footer"`
	IsActive   *bool   `json:"is_active"`
}

type AdSlotCreateRequest struct {
	Name      string `json:"name" binding:"required"`
	AdUnitID  string `json:"ad_unit_id" binding:"required"`
	AdCode    string `json:"ad_code" binding:"required"`
	Placement string `json:"placement" binding:"required"`
	AdType    string `json:"ad_type" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

type AdSlotUpdateRequest struct {
	Name      *string `json:"name"`
	AdUnitID  *string `json:"ad_unit_id"`
	AdCode    *string `json:"ad_code"`
	Placement *string `json:"placement"`
	AdType    *string `json:"ad_type"`
	IsActive  *bool   `json:"is_active"`
}

func (s *ContentService) ListScripts() ([]models.ScriptInjection, error) {
	var scripts []models.ScriptInjection
	if err := s.db.Order("created_at").Find(&scripts).Error; err != nil {
		return nil, err
	}
	return scripts, nil
}

func (s *ContentService) CreateScript(req *ScriptCreateRequest) (*models.ScriptInjection, error) {
	script := models.ScriptInjection{
		ID:         uuid.NewString(),
		Name:       req.Name,
		ScriptCode: req.ScriptCode,
		Placement:  req.Placement,
		IsActive:   boolOr(req.IsActive, true),
	}
	if err := s.db.Create(&script).Error; err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *ContentService) UpdateScript(id string, req *ScriptUpdateRequest) (*models.ScriptInjection, error) {
	var script models.ScriptInjection
	if err := s.db.Where("id = ?", id).First(&script).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: script %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		script.Name = *req.Name
	}
	if req.ScriptCode != nil {
		script.ScriptCode = *req.ScriptCode
	}
	if req.Placement != nil {
		script.Placement = *req.Placement
	}
	if req.IsActive != nil {
		script.IsActive = *req.IsActive
	}

	if err := s.db.Save(&script).Error; err != nil {
		return nil, err
	}
	return &script, nil
}

func (s *ContentService) DeleteScript(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.ScriptInjection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: script %s", ErrNotFound, id)
	}
	return nil
}

// ActiveScripts returns the active scripts for one placement, the only view
// the public surface exposes.
func (s *ContentService) ActiveScripts(placement string) ([]models.ScriptInjection, error) {
	var scripts []models.ScriptInjection
	err := s.db.Where("placement = ? AND is_active = ?", placement, true).
		Order("created_at").Find(&scripts).Error
	if err != nil {
		return nil, err
	}
	return scripts, nil
}

func (s *ContentService) ListAdSlots() ([]models.AdSlot, error) {
	var slots []models.AdSlot
	if err := s.db.Order("created_at").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *ContentService) CreateAdSlot(req *AdSlotCreateRequest) (*models.AdSlot, error) {
	slot := models.AdSlot{
		ID:        uuid.NewString(),
		Name:      req.Name,
		AdUnitID:  req.AdUnitID,
		AdCode:    req.AdCode,
		Placement: req.Placement,
		AdType:    req.AdType,
		IsActive:  boolOr(req.IsActive, true),
	}
	if err := s.db.Create(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *ContentService) UpdateAdSlot(id string, req *AdSlotUpdateRequest) (*models.AdSlot, error) {
	var slot models.AdSlot
	if err := s.db.Where("id = ?", id).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ad slot %s", ErrNotFound, id)
		}
		return nil, err
	}

	if req.Name != nil {
		slot.Name = *req.Name
	}
	if req.AdUnitID != nil {
		slot.AdUnitID = *req.AdUnitID
	}
	if req.AdCode != nil {
		slot.AdCode = *req.AdCode
	}
	if req.Placement != nil {
		slot.Placement = *req.Placement
	}
	if req.AdType != nil {
		slot.AdType = *req.AdType
	}
	if req.IsActive != nil {
		slot.IsActive = *req.IsActive
	}

	if err := s.db.Save(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *ContentService) DeleteAdSlot(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.AdSlot{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: ad slot %s", ErrNotFound, id)
	}
	return nil
}

func (s *ContentService) ActiveAdSlots(placement string) ([]models.AdSlot, error) {
	var slots []models.AdSlot
	err := s.db.Where("placement = ? AND is_active = ?", placement, true).
		Order("created_at").Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
