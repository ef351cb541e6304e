package models

import (
	"time"
)

// SiteConfig is a singleton row of site-wide tracking ids and text-file
// contents served at /ads.txt and /robots.txt.
type SiteConfig struct {
	ID                    string    `json:"id" gorm:"primaryKey"`
	GoogleAnalyticsID     *string   `json:"google_analytics_id"`
	GoogleSearchConsoleID *string   `json:"google_search_console_id"`
	FacebookPixelID       *string   `json:"facebook_pixel_id"`
	GoogleTagManagerID    *string   `json:"google_tag_manager_id"`
	TwitterPixelID        *string   `json:"twitter_pixel_id"`
	LinkedinPixelID       *string   `json:"linkedin_pixel_id"`
	TiktokPixelID         *string   `json:"tiktok_pixel_id"`
	SnapchatPixelID       *string   `json:"snapchat_pixel_id"`
	AdsTxtContent         *string   `json:"ads_txt_content"`
	RobotsTxtContent      *string   `json:"robots_txt_content"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (SiteConfig) TableName() string {
	return "site_configs"
}

type StatusCheck struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	ClientName string    `json:"client_name" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp"`
}

func (StatusCheck) TableName() string {
	return "status_checks"
}
