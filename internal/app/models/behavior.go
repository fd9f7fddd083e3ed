package models

import "time"

// Behavior is a single logged incident tied to a student and a behavior type
type Behavior struct {
	ID           int64     `json:"id" db:"id"`
	StudentID    int64     `json:"student_id" db:"student_id"` // students.id, not the external number
	BehaviorType string    `json:"behavior_type" db:"behavior_type"`
	Description  string    `json:"description" db:"description"`
	OccurredAt   time.Time `json:"date" db:"occurred_at"`
	ImageURL     string    `json:"image_url,omitempty" db:"image_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// BehaviorDetail is a behavior joined with the owning student
type BehaviorDetail struct {
	Behavior
	StudentName string           `json:"student_name"`
	Grade       string           `json:"grade"`
	Class       string           `json:"class"`
	Category    BehaviorCategory `json:"category"`
}

// BehaviorFact is one behavior joined with its student and type, the unit every statistic is computed from
type BehaviorFact struct {
	BehaviorID int64
	StudentID  int64
	Grade      string
	TypeName   string
	Category   BehaviorCategory
	OccurredAt time.Time
}

// BehaviorFilter restricts the fact set. Zero values mean unbounded.
type BehaviorFilter struct {
	Grade string
	From  *time.Time // inclusive
	To    *time.Time // exclusive
}

// StudentTypeStat groups one student's behaviors by type
type StudentTypeStat struct {
	BehaviorType string           `json:"behavior_type"`
	Category     BehaviorCategory `json:"category"`
	Count        int              `json:"count"`
	Descriptions []string         `json:"descriptions"`
}

// CategoryCount is a per-student count for one category
type CategoryCount struct {
	StudentID int64
	Category  BehaviorCategory
	Count     int
}
