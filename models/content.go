package models

import (
	"time"
)

// ScriptInjection is a third-party script snippet injected into the site
// header or footer.
type ScriptInjection struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null;index"`
	ScriptCode string    `json:"script_code" gorm:"not null"`
	Placement  string    `json:"placement" gorm:"not null;index"` // header, footer
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (ScriptInjection) TableName() string {
	return "script_injections"
}

type AdSlot struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;index"`
	AdUnitID  string    `json:"ad_unit_id" gorm:"not null"`
	AdCode    string    `json:"ad_code" gorm:"not null"`
	Placement string    `json:"placement" gorm:"not null;index"` // header, footer, sidebar, between-questions, ...
	AdType    string    `json:"ad_type" gorm:"not null"`         // adsense, adx, prebid
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdSlot) TableName() string {
	return "ad_slots"
}
