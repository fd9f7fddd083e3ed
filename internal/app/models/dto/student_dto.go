package dto

import (
	"strings"

	"github.com/yigit/conduct/internal/app/models"
)

// StudentRequest is the full record used for create and update
type StudentRequest struct {
	StudentID        string `json:"student_id" binding:"required,max=64,student_number" example:"S001"`
	Name             string `json:"name" binding:"required,max=100" example:"张三"`
	Grade            string `json:"grade" binding:"required,max=32" example:"高一"`
	Class            string `json:"class" binding:"max=32" example:"1班"`
	PhotoURL         string `json:"photo_url" binding:"max=512"`
	Address          string `json:"address" binding:"max=255"`
	EmergencyContact string `json:"emergency_contact" binding:"max=100"`
	EmergencyPhone   string `json:"emergency_phone" binding:"max=32,phone" example:"138-0000-0000"`
	Notes            string `json:"notes"`
}

// ToModel converts the request into a Student, trimming every field
func (r *StudentRequest) ToModel() *models.Student {
	return &models.Student{
		StudentID:        strings.TrimSpace(r.StudentID),
		Name:             strings.TrimSpace(r.Name),
		Grade:            strings.TrimSpace(r.Grade),
		Class:            strings.TrimSpace(r.Class),
		PhotoURL:         strings.TrimSpace(r.PhotoURL),
		Address:          strings.TrimSpace(r.Address),
		EmergencyContact: strings.TrimSpace(r.EmergencyContact),
		EmergencyPhone:   strings.TrimSpace(r.EmergencyPhone),
		Notes:            strings.TrimSpace(r.Notes),
	}
}

// ImportResult summarizes a bulk student import
type ImportResult struct {
	SuccessCount  int      `json:"success_count" example:"8"`
	ErrorCount    int      `json:"error_count" example:"2"`
	ErrorMessages []string `json:"error_messages"`
}

// StudentListQuery filters the student list
type StudentListQuery struct {
	Grade  string `form:"grade" example:"高一"`
	Class  string `form:"class" example:"1班"`
	Search string `form:"search" example:"张"`
}
