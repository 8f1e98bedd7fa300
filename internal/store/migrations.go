package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Saved plans (one row per build)
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			total_distance REAL NOT NULL,
			segment_distance REAL NOT NULL,
			max_speed REAL NOT NULL,
			target_average REAL NOT NULL,
			rest_speed REAL,
			floor_speed REAL NOT NULL DEFAULT 0,
			ceiling_speed REAL NOT NULL DEFAULT 0,
			total_hours REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_plans_created_at ON plans(created_at)`,

		// Plan entries (per-segment speeds)
		`CREATE TABLE IF NOT EXISTS plan_entries (
			plan_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			role TEXT NOT NULL,
			distance REAL NOT NULL,
			speed REAL NOT NULL,
			elapsed_hours REAL NOT NULL,
			PRIMARY KEY (plan_id, position),
			FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
		)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
