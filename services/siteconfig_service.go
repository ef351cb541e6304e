package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"techkwiz/models"
)

// SiteConfigService manages the singleton site configuration row, created
// with defaults on first read like the rewarded config.
type SiteConfigService struct {
	db *gorm.DB
}

func NewSiteConfigService(db *gorm.DB) *SiteConfigService {
	return &SiteConfigService{db: db}
}

type SiteConfigUpdateRequest struct {
	GoogleAnalyticsID     *string `json:"google_analytics_id"`
	GoogleSearchConsoleID *string `json:"google_search_console_id"`
	FacebookPixelID       *string `json:"facebook_pixel_id"`
	GoogleTagManagerID    *string `json:"google_tag_manager_id"`
	TwitterPixelID        *string `json:"twitter_pixel_id"`
	LinkedinPixelID       *string `json:"linkedin_pixel_id"`
	TiktokPixelID         *string `json:"tiktok_pixel_id"`
	SnapchatPixelID       *string `json:"snapchat_pixel_id"`
	AdsTxtContent         *string `json:"ads_txt_content"`
	RobotsTxtContent      *string `json:"robots_txt_content"`
}

func (s *SiteConfigService) Resolve() (*models.SiteConfig, error) {
	var config models.SiteConfig
	err := s.db.First(&config).Error
	if err == nil {
		return &config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	config = models.SiteConfig{ID: uuid.NewString()}
	if err := s.db.Create(&config).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (s *SiteConfigService) Update(req *SiteConfigUpdateRequest) (*models.SiteConfig, error) {
	config, err := s.Resolve()
	if err != nil {
		return nil, err
	}

	if req.GoogleAnalyticsID != nil {
		config.GoogleAnalyticsID = req.GoogleAnalyticsID
	}
	if req.GoogleSearchConsoleID != nil {
		config.GoogleSearchConsoleID = req.GoogleSearchConsoleID
	}
	if req.FacebookPixelID != nil {
		config.FacebookPixelID = req.FacebookPixelID
	}
	if req.GoogleTagManagerID != nil {
		config.GoogleTagManagerID = req.GoogleTagManagerID
	}
	if req.TwitterPixelID != nil {
		config.TwitterPixelID = req.TwitterPixelID
	}
	if req.LinkedinPixelID != nil {
		config.LinkedinPixelID = req.LinkedinPixelID
	}
	if req.TiktokPixelID != nil {
		config.TiktokPixelID = req.TiktokPixelID
	}
	if req.SnapchatPixelID != nil {
		config.SnapchatPixelID = req.SnapchatPixelID
	}
	if req.AdsTxtContent != nil {
		config.AdsTxtContent = req.AdsTxtContent
	}
	if req.RobotsTxtContent != nil {
		config.RobotsTxtContent = req.RobotsTxtContent
	}

	if err := s.db.Save(config).Error; err != nil {
		return nil, err
	}
	return config, nil
}

// AdsTxt returns the configured ads.txt body, empty when unset.
func (s *SiteConfigService) AdsTxt() (string, error) {
	config, err := s.Resolve()
	if err != nil {
		return "", err
	}
	if config.AdsTxtContent == nil {
		return "", nil
	}
	return *config.AdsTxtContent, nil
}

// RobotsTxt returns the configured robots.txt body, empty when unset.
func (s *SiteConfigService) RobotsTxt() (string, error) {
	config, err := s.Resolve()
	if err != nil {
		return "", err
	}
	if config.RobotsTxtContent == nil {
		return "", nil
	}
	return *config.RobotsTxtContent, nil
}
