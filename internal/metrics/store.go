package metrics

import (
	"context"
	"database/sql"
	"time"

	"nutriplan/internal/metrics/runsdb"
	"nutriplan/internal/planner"
)

// PlanRun records metadata for a single plan generation.
type PlanRun struct {
	UserID        string
	PlanID        string
	Days          int
	AvgHealth     float64
	AvgTaste      float64
	AvgVariety    float64
	TotalCarbonKg float64
	Duration      time.Duration
	Timestamp     time.Time
}

// Store handles persistence of plan-run metrics to SQLite.
type Store struct {
	queries *runsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: runsdb.New(db),
		db:      db,
	}
}

// Record saves one plan run to the database.
func (s *Store) Record(ctx context.Context, r PlanRun) error {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	return s.queries.InsertPlanRun(ctx, runsdb.InsertPlanRunParams{
		UserID:         r.UserID,
		PlanID:         r.PlanID,
		Days:           int64(r.Days),
		AvgHealthMatch: r.AvgHealth,
		AvgTasteMatch:  r.AvgTaste,
		AvgVariety:     r.AvgVariety,
		TotalCarbonKg:  r.TotalCarbonKg,
		DurationMs:     r.Duration.Milliseconds(),
		CreatedAt:      ts,
	})
}

// RecordPlan records a run directly from a generated plan.
func (s *Store) RecordPlan(ctx context.Context, userID string, plan *planner.PlanResponse, duration time.Duration) error {
	return s.Record(ctx, PlanRun{
		UserID:        userID,
		PlanID:        plan.ID,
		Days:          len(plan.Days),
		AvgHealth:     plan.OverallStats.AvgHealthMatch,
		AvgTaste:      plan.OverallStats.AvgTasteMatch,
		AvgVariety:    plan.OverallStats.AvgVariety,
		TotalCarbonKg: plan.OverallStats.TotalCarbonKg,
		Duration:      duration,
	})
}

// DailyRuns represents run totals for a single day.
type DailyRuns struct {
	Date          string
	Runs          int
	DaysGenerated int
	AvgDurationMS int
}

// GetDailyRuns retrieves run stats for the last N days.
func (s *Store) GetDailyRuns(ctx context.Context, days int) ([]DailyRuns, error) {
	since := time.Now().AddDate(0, 0, -days).Format("2006-01-02 15:04:05")
	rows, err := s.queries.GetDailyRunStats(ctx, since)
	if err != nil {
		return nil, err
	}

	var results []DailyRuns
	for _, r := range rows {
		u := DailyRuns{Runs: int(r.Count)}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}
		if r.Sum.Valid {
			u.DaysGenerated = int(r.Sum.Float64)
		}
		if r.Avg.Valid {
			u.AvgDurationMS = int(r.Avg.Float64)
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) error {
	threshold := time.Now().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupPlanRuns(ctx, threshold)
}
