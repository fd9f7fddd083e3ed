package models

import (
	"encoding/json"
)

// NameValue is one slice of a pie/bar chart
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DailyCount is a single point of a time series, serialized as ["2024-03-01", 2]
type DailyCount struct {
	Date  string
	Count int
}

// MarshalJSON encodes the point as a two element array
func (d DailyCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{d.Date, d.Count})
}

// TimeTrend holds the per-day series of both categories, ascending by date
type TimeTrend struct {
	Violations []DailyCount `json:"violations"`
	Excellent  []DailyCount `json:"excellent"`
}

// Statistics is the dashboard rollup over a filtered behavior set
type Statistics struct {
	TotalViolations          int         `json:"total_violations"`
	TotalExcellent           int         `json:"total_excellent"`
	ViolationStudents        int         `json:"violation_students"`
	ExcellentStudents        int         `json:"excellent_students"`
	BehaviorTypeDistribution []NameValue `json:"behavior_type_distribution"`
	GradeViolations          []int       `json:"grade_violations"`
	GradeExcellent           []int       `json:"grade_excellent"`
	TimeTrend                TimeTrend   `json:"time_trend"`
}

// BehaviorTrends is a zero filled per-day series over a rolling window
type BehaviorTrends struct {
	Dates      []string `json:"dates"`
	Violations []int    `json:"violations"`
	Excellents []int    `json:"excellents"`
}

// GradeComparison aligns both categories to GradeLevels
type GradeComparison struct {
	Grades     []string `json:"grades"`
	Violations []int    `json:"violations"`
	Excellents []int    `json:"excellents"`
}

// BehaviorTypeCount is the usage count of one behavior type
type BehaviorTypeCount struct {
	TypeName    string           `json:"type_name"`
	Category    BehaviorCategory `json:"category"`
	IsViolation bool             `json:"is_violation"`
	Count       int              `json:"count"`
}
