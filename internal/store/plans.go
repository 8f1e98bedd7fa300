package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrPlanNotFound is returned when a plan doesn't exist
var ErrPlanNotFound = errors.New("plan not found")

// SavePlan inserts a plan and its entries in one transaction.
// An empty ID gets a new UUID and a zero CreatedAt gets the current time.
func (db *DB) SavePlan(p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plans (
			id, mode, total_distance, segment_distance, max_speed,
			target_average, rest_speed, floor_speed, ceiling_speed,
			total_hours, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Mode, p.TotalDistance, p.SegmentDistance, p.MaxSpeed,
		p.TargetAverage, p.RestSpeed, p.FloorSpeed, p.CeilingSpeed,
		p.TotalHours, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO plan_entries (plan_id, position, role, distance, speed, elapsed_hours)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range p.Entries {
		if _, err := stmt.Exec(p.ID, e.Position, e.Role, e.Distance, e.Speed, e.ElapsedHours); err != nil {
			return fmt.Errorf("inserting entry %d: %w", e.Position, err)
		}
	}

	return tx.Commit()
}

// GetPlan retrieves a plan with its entries
func (db *DB) GetPlan(id string) (*Plan, error) {
	row := db.QueryRow(`
		SELECT id, mode, total_distance, segment_distance, max_speed,
			target_average, rest_speed, floor_speed, ceiling_speed,
			total_hours, created_at
		FROM plans
		WHERE id = ?
	`, id)

	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`
		SELECT position, role, distance, speed, elapsed_hours
		FROM plan_entries
		WHERE plan_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e PlanEntry
		if err := rows.Scan(&e.Position, &e.Role, &e.Distance, &e.Speed, &e.ElapsedHours); err != nil {
			return nil, err
		}
		p.Entries = append(p.Entries, e)
	}

	return p, rows.Err()
}

// ListPlans retrieves the most recent plans, newest first, without entries.
// A limit of zero or less returns every plan.
func (db *DB) ListPlans(limit int) ([]Plan, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(`
		SELECT id, mode, total_distance, segment_distance, max_speed,
			target_average, rest_speed, floor_speed, ceiling_speed,
			total_hours, created_at
		FROM plans
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}

	return plans, rows.Err()
}

// DeletePlan removes a plan and, by cascade, its entries
func (db *DB) DeletePlan(id string) error {
	result, err := db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlan scans a single plan row
func scanPlan(row rowScanner) (*Plan, error) {
	var p Plan
	var restSpeed sql.NullFloat64
	var createdAt string

	err := row.Scan(
		&p.ID, &p.Mode, &p.TotalDistance, &p.SegmentDistance, &p.MaxSpeed,
		&p.TargetAverage, &restSpeed, &p.FloorSpeed, &p.CeilingSpeed,
		&p.TotalHours, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if restSpeed.Valid {
		v := restSpeed.Float64
		p.RestSpeed = &v
	}

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, parseErr)
	}

	return &p, nil
}
