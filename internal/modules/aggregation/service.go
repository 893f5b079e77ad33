package aggregation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracknest/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobName identifies the rollup job for the scheduler and the state row.
const JobName = "rollup_events"

var errConcurrentRollup = errors.New("another rollup advanced the high-water mark")

// Service folds raw events into hourly per-website summaries.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Run executes one rollup pass over the window [highWater, start-of-current-hour).
//
// The high-water mark advances in the same transaction as the summary
// increments, so a crash-retried run re-reads the same window and either
// commits it once or finds it already advanced — never double counts.
func (s *Service) Run(ctx context.Context) error {
	started := time.Now()

	state, err := s.loadState(ctx, started.Truncate(time.Hour))
	if err != nil {
		return fmt.Errorf("load rollup state: %w", err)
	}
	windowStart, windowEnd, ok := rollupWindow(state.HighWater, started)
	if !ok {
		return nil
	}

	var events []models.EventModel
	if err := s.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp < ?", windowStart, windowEnd).
		Order("timestamp ASC").
		Find(&events).Error; err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	groups := GroupEvents(events)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, g := range groups {
			if err := upsertSummary(tx, g); err != nil {
				return fmt.Errorf("upsert summary %s/%s: %w", g.WebsiteID, g.Bucket.Format(time.RFC3339), err)
			}
		}

		res := tx.Model(&models.AggregationStateModel{}).
			Where("id = ? AND high_water = ?", state.ID, state.HighWater).
			Update("high_water", windowEnd)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errConcurrentRollup
		}
		return nil
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(started)
	s.logger.Info("rollup completed",
		zap.Time("window_start", windowStart),
		zap.Time("window_end", windowEnd),
		zap.Int("events", len(events)),
		zap.Int("buckets", len(groups)),
		zap.Duration("elapsed", elapsed),
	)
	if elapsed > time.Hour {
		s.logger.Warn("rollup run exceeded its scheduling period", zap.Duration("elapsed", elapsed))
	}
	return nil
}

// rollupWindow returns the [start, end) range a run at now should fold, and
// whether there is anything to do. end is the start of the current hour so a
// run never reads a partially filled bucket.
func rollupWindow(highWater, now time.Time) (start, end time.Time, ok bool) {
	end = now.Truncate(time.Hour)
	if !highWater.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return highWater, end, true
}

// loadState fetches the high-water mark row, creating it on first run with a
// one-hour initial window.
func (s *Service) loadState(ctx context.Context, windowEnd time.Time) (*models.AggregationStateModel, error) {
	var state models.AggregationStateModel
	err := s.db.WithContext(ctx).Where("name = ?", JobName).First(&state).Error
	if err == nil {
		return &state, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	state = models.AggregationStateModel{Name: JobName, HighWater: windowEnd.Add(-time.Hour)}
	if createErr := s.db.WithContext(ctx).Create(&state).Error; createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent first run.
			if err := s.db.WithContext(ctx).Where("name = ?", JobName).First(&state).Error; err != nil {
				return nil, err
			}
			return &state, nil
		}
		return nil, createErr
	}
	return &state, nil
}

// HighWaterMark returns the rollup high-water mark, if any run has persisted
// one. The overview query uses it as the live-window lower bound.
func HighWaterMark(db *gorm.DB) (time.Time, bool, error) {
	var state models.AggregationStateModel
	err := db.Where("name = ?", JobName).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return state.HighWater, true, nil
}

// upsertSummary merges one group into its summary row: numeric fields are
// incremented and counter maps merged key-wise, never replaced.
func upsertSummary(tx *gorm.DB, g *Group) error {
	var row models.EventSummaryModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("website_id = ? AND date = ?", g.WebsiteID, g.Bucket).
		First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.EventSummaryModel{
			WebsiteID:       g.WebsiteID,
			Date:            g.Bucket,
			EventTypeCounts: models.CounterMap(g.Acc.EventTypes.ToMap()),
			Sessions:        g.Acc.SessionCount(),
			TopPages:        models.CounterMap(g.Acc.PageViews.ToMap()),
			Referrers:       models.CounterMap(g.Acc.Referrers.ToMap()),
		}
		return tx.Create(&row).Error
	}
	if err != nil {
		return err
	}

	row.EventTypeCounts = mergeCounts(row.EventTypeCounts, g.Acc.EventTypes.ToMap())
	row.TopPages = mergeCounts(row.TopPages, g.Acc.PageViews.ToMap())
	row.Referrers = mergeCounts(row.Referrers, g.Acc.Referrers.ToMap())
	row.Sessions += g.Acc.SessionCount()
	return tx.Save(&row).Error
}

func mergeCounts(existing models.CounterMap, delta map[string]int64) models.CounterMap {
	if existing == nil {
		existing = models.CounterMap{}
	}
	for k, v := range delta {
		existing[k] += v
	}
	return existing
}
