package models

import "time"

// EventSummaryModel is a pre-aggregated rollup of one website's events for
// one hour bucket. Date is the start of the hour the events fell into, taken
// from each event's own timestamp.
//
// Repeated rollup runs increment the numeric fields and merge the counter
// maps key-wise; a row is never replaced wholesale. Sessions is the distinct
// session count within this bucket's own window only — summing it across
// buckets double counts sessions that span a boundary, an approximation the
// overview query accepts deliberately.
type EventSummaryModel struct {
	Base
	WebsiteID       string     `json:"websiteId"       gorm:"index:idx_summaries_site_date,unique,composite:1;not null"`
	Date            time.Time  `json:"date"            gorm:"index:idx_summaries_site_date,unique,composite:2;not null"`
	EventTypeCounts CounterMap `json:"eventTypeCounts" gorm:"type:longtext"`
	Sessions        int64      `json:"sessions"`
	TopPages        CounterMap `json:"topPages"        gorm:"type:longtext"`
	Referrers       CounterMap `json:"referrers"       gorm:"type:longtext"`
}

func (EventSummaryModel) TableName() string { return "event_summaries" }

// AggregationStateModel persists the rollup high-water mark: events strictly
// older than HighWater have been folded into summaries. It advances in the
// same transaction as the summary writes, which is what makes crash-retried
// runs idempotent.
type AggregationStateModel struct {
	Base
	Name      string    `json:"name"       gorm:"uniqueIndex;not null"`
	HighWater time.Time `json:"high_water" gorm:"not null"`
}

func (AggregationStateModel) TableName() string { return "aggregation_states" }
