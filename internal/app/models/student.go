package models

// Grade levels in dashboard order
var GradeLevels = []string{"高一", "高二", "高三"}

// Student defines the student model based on the 'students' table
type Student struct {
	ID               int64  `json:"id" db:"id" example:"1"`
	StudentID        string `json:"student_id" db:"student_id" example:"S001"` // External, unique school number
	Name             string `json:"name" db:"name" example:"张三"`
	Grade            string `json:"grade" db:"grade" example:"高一"`
	Class            string `json:"class" db:"class" example:"1班"`
	PhotoURL         string `json:"photo_url" db:"photo_url"`
	Address          string `json:"address" db:"address"`
	EmergencyContact string `json:"emergency_contact" db:"emergency_contact"`
	EmergencyPhone   string `json:"emergency_phone" db:"emergency_phone"`
	Notes            string `json:"notes" db:"notes"`
}

// StudentSummary is a student row with per-category behavior counts
type StudentSummary struct {
	Student
	ViolationCount int `json:"violation_count"`
	ExcellentCount int `json:"excellent_count"`
}
