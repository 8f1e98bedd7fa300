package store

import "time"

// Plan is a saved schedule build
type Plan struct {
	ID              string    `db:"id"`
	Mode            string    `db:"mode"` // "simple" or "tempo"
	TotalDistance   float64   `db:"total_distance"`
	SegmentDistance float64   `db:"segment_distance"`
	MaxSpeed        float64   `db:"max_speed"`
	TargetAverage   float64   `db:"target_average"`
	RestSpeed       *float64  `db:"rest_speed"` // nullable, tempo only
	FloorSpeed      float64   `db:"floor_speed"`
	CeilingSpeed    float64   `db:"ceiling_speed"`
	TotalHours      float64   `db:"total_hours"`
	CreatedAt       time.Time `db:"created_at"`
	Entries         []PlanEntry
}

// PlanEntry is one segment of a saved plan
type PlanEntry struct {
	Position     int     `db:"position"`
	Role         string  `db:"role"` // "work" or "rest"
	Distance     float64 `db:"distance"`
	Speed        float64 `db:"speed"`
	ElapsedHours float64 `db:"elapsed_hours"`
}
