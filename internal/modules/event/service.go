package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tracknest/core/internal/models"
	pkgredis "github.com/tracknest/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const channelPrefix = "events:"

type Service struct {
	db     *gorm.DB
	rc     *pkgredis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, rc *pkgredis.Client, logger *zap.Logger) *Service {
	return &Service{db: db, rc: rc, logger: logger}
}

// Track persists one event and fans it out to live subscribers. Persistence is
// authoritative: a Redis publish failure is logged and swallowed so the
// collector never drops an accepted event over a fanout hiccup.
func (s *Service) Track(ctx context.Context, dto *TrackEventDTO, ip, userAgent string) (*models.EventModel, error) {
	var site models.WebsiteModel
	if err := s.db.WithContext(ctx).First(&site, "id = ?", dto.WebsiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errUnregisteredWebsite
		}
		return nil, err
	}

	if err := s.ensureSession(ctx, dto, ip, userAgent); err != nil {
		return nil, err
	}

	ev := &models.EventModel{
		WebsiteID: dto.WebsiteID,
		SessionID: dto.SessionID,
		EventType: dto.EventType,
		URL:       dto.URL,
		Referrer:  dto.Referrer,
		UserAgent: userAgent,
		IP:        ip,
		Timestamp: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(ev).Error; err != nil {
		return nil, err
	}

	s.publish(ctx, ev)
	return ev, nil
}

// ensureSession creates the session row on first sight. Two concurrent first
// events for the same session race on the unique index; the loser treats the
// duplicate-key error as success.
func (s *Service) ensureSession(ctx context.Context, dto *TrackEventDTO, ip, userAgent string) error {
	var existing models.SessionModel
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND website_id = ?", dto.SessionID, dto.WebsiteID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sess := models.SessionModel{
		SessionID: dto.SessionID,
		WebsiteID: dto.WebsiteID,
		IP:        ip,
		UserAgent: userAgent,
	}
	if createErr := s.db.WithContext(ctx).Create(&sess).Error; createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			return nil
		}
		return createErr
	}
	return nil
}

func (s *Service) publish(ctx context.Context, ev *models.EventModel) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.logger.Warn("event payload marshal failed", zap.String("eventId", ev.ID), zap.Error(err))
		return
	}
	if err := s.rc.Publish(ctx, channelPrefix+ev.WebsiteID, payload); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("websiteId", ev.WebsiteID),
			zap.String("eventId", ev.ID),
			zap.Error(err),
		)
	}
}
