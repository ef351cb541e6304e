package models

import (
	"time"

	"gorm.io/datatypes"
)

type AdEventType string

const (
	AdEventStart    AdEventType = "start"
	AdEventComplete AdEventType = "complete"
	AdEventError    AdEventType = "error"
)

func (t AdEventType) Valid() bool {
	switch t {
	case AdEventStart, AdEventComplete, AdEventError:
		return true
	}
	return false
}

// AdAnalyticsEvent is a write-once record of a rewarded-ad lifecycle event.
type AdAnalyticsEvent struct {
	ID         string            `json:"id" gorm:"primaryKey"`
	EventType  AdEventType       `json:"event_type" gorm:"not null;index"`
	Placement  string            `json:"placement" gorm:"not null;index"`
	Source     *string           `json:"source,omitempty"`
	CategoryID *string           `json:"category_id,omitempty" gorm:"index"`
	SessionID  *string           `json:"session_id,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index"`
}

func (AdAnalyticsEvent) TableName() string {
	return "ad_analytics_events"
}
