package planstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutriplan/internal/planner"
	"nutriplan/internal/planstore/plandb"
)

// ErrNotFound is returned when a user has no current (unexpired) plan.
var ErrNotFound = errors.New("plan not found")

// DefaultTTL is how long a cached plan stays valid.
const DefaultTTL = 7 * 24 * time.Hour

// Store persists generated plans keyed by user id. One row per user;
// writing a new plan replaces the old one (last write wins — there is
// no transactional guard against concurrent writers for one user).
type Store struct {
	queries *plandb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: plandb.New(db),
		db:      db,
	}
}

// Put stores the user's plan with the given TTL, replacing any previous
// plan. A non-positive ttl falls back to DefaultTTL.
func (s *Store) Put(ctx context.Context, userID string, plan *planner.PlanResponse, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	now := time.Now().UTC()
	err = s.queries.UpsertMealPlan(ctx, plandb.UpsertMealPlanParams{
		UserID:    userID,
		PlanData:  data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		return fmt.Errorf("failed to store plan for user %s: %w", userID, err)
	}
	return nil
}

// Get retrieves the user's current plan. Expired plans are treated as
// absent and removed lazily.
func (s *Store) Get(ctx context.Context, userID string) (*planner.PlanResponse, error) {
	row, err := s.queries.GetMealPlan(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load plan for user %s: %w", userID, err)
	}

	if !row.ExpiresAt.After(time.Now().UTC()) {
		if err := s.queries.DeleteMealPlan(ctx, userID); err != nil {
			return nil, fmt.Errorf("failed to drop expired plan for user %s: %w", userID, err)
		}
		return nil, ErrNotFound
	}

	var plan planner.PlanResponse
	if err := json.Unmarshal(row.PlanData, &plan); err != nil {
		return nil, fmt.Errorf("failed to decode stored plan for user %s: %w", userID, err)
	}
	return &plan, nil
}

// UpdateDay replaces one day inside the stored plan, keeping the
// original expiry. Day indexes are 1-based.
func (s *Store) UpdateDay(ctx context.Context, userID string, dayIndex int, day planner.DailyPlan) error {
	row, err := s.queries.GetMealPlan(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load plan for user %s: %w", userID, err)
	}

	var plan planner.PlanResponse
	if err := json.Unmarshal(row.PlanData, &plan); err != nil {
		return fmt.Errorf("failed to decode stored plan for user %s: %w", userID, err)
	}

	if dayIndex < 1 || dayIndex > len(plan.Days) {
		return fmt.Errorf("day index %d out of range for %d-day plan", dayIndex, len(plan.Days))
	}
	day.Day = dayIndex
	plan.Days[dayIndex-1] = day

	data, err := json.Marshal(&plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	err = s.queries.UpsertMealPlan(ctx, plandb.UpsertMealPlanParams{
		UserID:    userID,
		PlanData:  data,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to store updated plan for user %s: %w", userID, err)
	}
	return nil
}

// CleanupExpired removes all expired plans.
func (s *Store) CleanupExpired(ctx context.Context) error {
	if err := s.queries.DeleteExpiredMealPlans(ctx, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to clean up expired plans: %w", err)
	}
	return nil
}
