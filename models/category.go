package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuizCategory struct {
	ID            string                      `json:"id" gorm:"primaryKey"`
	Name          string                      `json:"name" gorm:"not null;index"`
	Icon          string                      `json:"icon"`
	Color         string                      `json:"color"`
	Description   string                      `json:"description"`
	Subcategories datatypes.JSONSlice[string] `json:"subcategories"`
	EntryFee      int                         `json:"entry_fee" gorm:"not null;default:0"`
	PrizePool     int                         `json:"prize_pool" gorm:"not null;default:0"`

	// Per-category timer settings projected by the timer-config endpoint.
	TimerEnabled               bool `json:"timer_enabled" gorm:"not null;default:true"`
	TimerSeconds               int  `json:"timer_seconds" gorm:"not null;default:30"`
	ShowTimerWarning           bool `json:"show_timer_warning" gorm:"not null;default:true"`
	AutoAdvanceOnTimeout       bool `json:"auto_advance_on_timeout" gorm:"not null;default:true"`
	ShowCorrectAnswerOnTimeout bool `json:"show_correct_answer_on_timeout" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QuizCategory) TableName() string {
	return "quiz_categories"
}

type TimerConfig struct {
	CategoryID                 string `json:"category_id"`
	CategoryName               string `json:"category_name"`
	TimerEnabled               bool   `json:"timer_enabled"`
	TimerSeconds               int    `json:"timer_seconds"`
	ShowTimerWarning           bool   `json:"show_timer_warning"`
	AutoAdvanceOnTimeout       bool   `json:"auto_advance_on_timeout"`
	ShowCorrectAnswerOnTimeout bool   `json:"show_correct_answer_on_timeout"`
}
