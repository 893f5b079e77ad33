package stats

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tracknest/core/internal/models"
	"github.com/tracknest/core/internal/modules/aggregation"
	pkgredis "github.com/tracknest/core/internal/pkg/redis"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	overviewCacheTTL    = 60 * time.Second
	overviewCachePrefix = "overview:"
	topN                = 5
)

type Service struct {
	db     *gorm.DB
	rc     *pkgredis.Client
	logger *zap.Logger
}

func NewService(db *gorm.DB, rc *pkgredis.Client, logger *zap.Logger) *Service {
	return &Service{db: db, rc: rc, logger: logger}
}

// VerifyOwnership fails unless the website exists and belongs to userID.
// Unknown websites are indistinguishable from foreign ones on purpose.
func (s *Service) VerifyOwnership(ctx context.Context, userID, websiteID string) error {
	var site models.WebsiteModel
	if err := s.db.WithContext(ctx).First(&site, "id = ?", websiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotOwner
		}
		return err
	}
	if site.UserID != userID {
		return errNotOwner
	}
	return nil
}

// Overview returns the merged summary+live view for a website, behind a
// 60-second cache. Cache failures on either side degrade to recomputation.
func (s *Service) Overview(ctx context.Context, websiteID, userID string) (*Overview, error) {
	if err := s.VerifyOwnership(ctx, userID, websiteID); err != nil {
		return nil, err
	}

	cacheKey := overviewCachePrefix + websiteID
	if cached, err := s.rc.Get(ctx, cacheKey); err != nil {
		s.logger.Warn("overview cache read failed", zap.String("websiteId", websiteID), zap.Error(err))
	} else if cached != "" {
		var out Overview
		if err := json.Unmarshal([]byte(cached), &out); err == nil {
			return &out, nil
		}
		s.logger.Warn("overview cache entry malformed, recomputing", zap.String("websiteId", websiteID))
	}

	out, err := s.compute(ctx, websiteID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(out); err == nil {
		if err := s.rc.Set(ctx, cacheKey, string(data), overviewCacheTTL); err != nil {
			s.logger.Warn("overview cache write failed", zap.String("websiteId", websiteID), zap.Error(err))
		}
	}
	return out, nil
}

func (s *Service) compute(ctx context.Context, websiteID string) (*Overview, error) {
	var (
		summaries []models.EventSummaryModel
		live      []models.EventModel
	)

	// One transaction, mark first: the high-water mark, the summaries and
	// the live window must come from a single snapshot, or a rollup
	// committing between the reads leaves its window in neither the summary
	// fold nor the live scan.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		liveStart, ok, err := aggregation.HighWaterMark(tx)
		if err != nil {
			return err
		}
		now := time.Now()
		if !ok {
			// No rollup has run yet; a one-hour window lets fresh
			// deployments show activity before the first rollup.
			liveStart = now.Add(-time.Hour)
		}

		if err := tx.
			Where("website_id = ?", websiteID).
			Order("date ASC").
			Find(&summaries).Error; err != nil {
			return err
		}

		return tx.
			Select("event_type", "url", "referrer", "session_id").
			Where("website_id = ? AND timestamp >= ? AND timestamp < ?", websiteID, liveStart, now).
			Order("timestamp ASC").
			Find(&live).Error
	})
	if err != nil {
		return nil, err
	}

	return assembleOverview(summaries, live), nil
}

// assembleOverview merges stored hourly summaries (in bucket order) with the
// not-yet-rolled-up live events (in timestamp order) into one view. The live
// events go through the same per-event rules as the rollup, so both halves
// count identically.
func assembleOverview(summaries []models.EventSummaryModel, live []models.EventModel) *Overview {
	eventTypes := aggregation.NewCounter()
	pages := aggregation.NewCounter()
	referrers := aggregation.NewCounter()
	var totalSessions int64

	for _, sum := range summaries {
		totalSessions += sum.Sessions
		eventTypes.MergeMap(sum.EventTypeCounts)
		pages.MergeMap(sum.TopPages)
		referrers.MergeMap(sum.Referrers)
	}

	acc := aggregation.NewAccumulator()
	for _, ev := range live {
		acc.Observe(ev.EventType, ev.URL, ev.Referrer, ev.SessionID)
	}
	eventTypes.MergeCounter(acc.EventTypes)
	pages.MergeCounter(acc.PageViews)
	referrers.MergeCounter(acc.Referrers)
	totalSessions += acc.SessionCount()

	return &Overview{
		EventTypeCounts: eventTypes.ToMap(),
		UniqueSessions:  totalSessions,
		TopPages:        toPageCounts(pages.Top(topN)),
		TopReferrers:    toReferrerCounts(referrers.Top(topN)),
	}
}

func toPageCounts(entries []aggregation.Entry) []PageCount {
	out := make([]PageCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, PageCount{URL: e.Key, Count: e.Count})
	}
	return out
}

func toReferrerCounts(entries []aggregation.Entry) []ReferrerCount {
	out := make([]ReferrerCount, 0, len(entries))
	for _, e := range entries {
		out = append(out, ReferrerCount{Referrer: e.Key, Count: e.Count})
	}
	return out
}
