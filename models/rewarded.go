package models

import (
	"time"
)

// RewardedPopupConfig controls when the rewarded-ad popup is shown. One row
// per scope: CategoryID nil is the homepage scope, otherwise the row applies
// to a single quiz category.
type RewardedPopupConfig struct {
	ID                      string    `json:"id" gorm:"primaryKey"`
	CategoryID              *string   `json:"category_id" gorm:"uniqueIndex"`
	CategoryName            string    `json:"category_name"`
	TriggerAfterQuestions   int       `json:"trigger_after_questions" gorm:"not null;default:5"`
	CoinReward              int       `json:"coin_reward" gorm:"not null;default:200"`
	IsActive                bool      `json:"is_active" gorm:"not null;default:true"`
	ShowOnInsufficientCoins bool      `json:"show_on_insufficient_coins" gorm:"not null;default:true"`
	ShowDuringQuiz          bool      `json:"show_during_quiz" gorm:"not null;default:true"`
	EnableAnalytics         bool      `json:"enable_analytics" gorm:"not null;default:false"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (RewardedPopupConfig) TableName() string {
	return "rewarded_popup_configs"
}
