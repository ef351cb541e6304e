package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"techkwiz/models"
)

const defaultRecentEvents = 50

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type AdEventRequest struct {
	EventType  string                 `json:"event_type" binding:"required"`
	Placement  string                 `json:"placement" binding:"required"`
	Source     *string                `json:"source"`
	CategoryID *string                `json:"category_id"`
	SessionID  *string                `json:"session_id"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// AnalyticsFilter narrows summary and export queries. From/To are parsed
// from RFC3339 query params.
type AnalyticsFilter struct {
	From       *time.Time
	To         *time.Time
	Placement  string
	CategoryID string
	Limit      int
}

type AnalyticsFilterEcho struct {
	FromTs     string `json:"from_ts"`
	ToTs       string `json:"to_ts"`
	Placement  string `json:"placement"`
	CategoryID string `json:"category_id"`
}

type AnalyticsTotals struct {
	TotalEvents    int64   `json:"total_events"`
	Starts         int64   `json:"starts"`
	Completes      int64   `json:"completes"`
	Errors         int64   `json:"errors"`
	ConversionRate float64 `json:"conversion_rate"`
}

type AnalyticsSummary struct {
	Totals AnalyticsTotals           `json:"totals"`
	Recent []models.AdAnalyticsEvent `json:"recent"`
	Filter AnalyticsFilterEcho       `json:"filter"`
}

// ParseAnalyticsFilter validates query-string filter values. Malformed
// timestamps are a BadRequest, not a silent no-filter.
func ParseAnalyticsFilter(fromTs, toTs, placement, categoryID string, limit int) (*AnalyticsFilter, error) {
	filter := &AnalyticsFilter{
		Placement:  placement,
		CategoryID: categoryID,
		Limit:      limit,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultRecentEvents
	}
	if fromTs != "" {
		t, err := time.Parse(time.RFC3339, fromTs)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from_ts %q", ErrBadRequest, fromTs)
		}
		filter.From = &t
	}
	if toTs != "" {
		t, err := time.Parse(time.RFC3339, toTs)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to_ts %q", ErrBadRequest, toTs)
		}
		filter.To = &t
	}
	return filter, nil
}

// Record stores one write-once analytics event.
func (s *AnalyticsService) Record(req *AdEventRequest) (*models.AdAnalyticsEvent, error) {
	eventType := models.AdEventType(req.EventType)
	if !eventType.Valid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrBadRequest, req.EventType)
	}

	event := models.AdAnalyticsEvent{
		ID:         uuid.NewString(),
		EventType:  eventType,
		Placement:  req.Placement,
		Source:     req.Source,
		CategoryID: req.CategoryID,
		SessionID:  req.SessionID,
		Metadata:   datatypes.JSONMap(req.Metadata),
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Summary aggregates event counts and the derived conversion rate
// (completes/starts, 0 when there are no starts) plus the most recent events.
func (s *AnalyticsService) Summary(ctx context.Context, filter *AnalyticsFilter) (*AnalyticsSummary, error) {
	base := s.filtered(s.db.WithContext(ctx), filter)

	var totals AnalyticsTotals
	if err := base.Model(&models.AdAnalyticsEvent{}).Count(&totals.TotalEvents).Error; err != nil {
		return nil, err
	}
	counts := map[models.AdEventType]*int64{
		models.AdEventStart:    &totals.Starts,
		models.AdEventComplete: &totals.Completes,
		models.AdEventError:    &totals.Errors,
	}
	for eventType, dest := range counts {
		query := s.filtered(s.db.WithContext(ctx), filter).Model(&models.AdAnalyticsEvent{})
		if err := query.Where("event_type = ?", eventType).Count(dest).Error; err != nil {
			return nil, err
		}
	}
	if totals.Starts > 0 {
		totals.ConversionRate = float64(totals.Completes) / float64(totals.Starts) * 100
	}

	recent := []models.AdAnalyticsEvent{}
	query := s.filtered(s.db.WithContext(ctx), filter).
		Order("created_at DESC").Limit(filter.Limit)
	if err := query.Find(&recent).Error; err != nil {
		return nil, err
	}

	return &AnalyticsSummary{
		Totals: totals,
		Recent: recent,
		Filter: filterEcho(filter),
	}, nil
}

// ExportCSV renders every matching event, newest first, with a fixed header
// row.
func (s *AnalyticsService) ExportCSV(ctx context.Context, filter *AnalyticsFilter) ([]byte, error) {
	var events []models.AdAnalyticsEvent
	query := s.filtered(s.db.WithContext(ctx), filter).Order("created_at DESC")
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"created_at", "event_type", "placement", "source", "category_id", "session_id", "metadata"}); err != nil {
		return nil, err
	}
	for _, event := range events {
		metadata := ""
		if len(event.Metadata) > 0 {
			raw, err := json.Marshal(event.Metadata)
			if err == nil {
				metadata = string(raw)
			}
		}
		record := []string{
			event.CreatedAt.UTC().Format(time.RFC3339),
			string(event.EventType),
			event.Placement,
			stringOr(event.Source),
			stringOr(event.CategoryID),
			stringOr(event.SessionID),
			metadata,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *AnalyticsService) filtered(db *gorm.DB, filter *AnalyticsFilter) *gorm.DB {
	query := db
	if filter.Placement != "" {
		query = query.Where("placement = ?", filter.Placement)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}
	return query
}

func filterEcho(filter *AnalyticsFilter) AnalyticsFilterEcho {
	echo := AnalyticsFilterEcho{
		Placement:  filter.Placement,
		CategoryID: filter.CategoryID,
	}
	if filter.From != nil {
		echo.FromTs = filter.From.Format(time.RFC3339)
	}
	if filter.To != nil {
		echo.ToTs = filter.To.Format(time.RFC3339)
	}
	return echo
}

func stringOr(v *string) string {
	if v != nil {
		return *v
	}
	return ""
}
