package dto

import (
	"strings"
	"time"

	"github.com/yigit/conduct/internal/app/models"
)

// BehaviorRequest creates or replaces a behavior record. Date is optional and defaults to now.
type BehaviorRequest struct {
	StudentID    int64      `json:"student_id" binding:"required,gt=0" example:"1"`
	BehaviorType string     `json:"behavior_type" binding:"required,max=64" example:"迟到"`
	Description  string     `json:"description" example:"第一节课迟到10分钟"`
	Date         *time.Time `json:"date,omitempty" example:"2024-03-01T08:10:00+08:00"`
	ImageURL     string     `json:"image_url" binding:"max=512"`
}

// ToModel converts the request; a missing date is left zero for the service to fill
func (r *BehaviorRequest) ToModel() *models.Behavior {
	b := &models.Behavior{
		StudentID:    r.StudentID,
		BehaviorType: strings.TrimSpace(r.BehaviorType),
		Description:  strings.TrimSpace(r.Description),
		ImageURL:     strings.TrimSpace(r.ImageURL),
	}
	if r.Date != nil {
		b.OccurredAt = *r.Date
	}
	return b
}

// BehaviorTypeRequest creates or updates a behavior type.
// Category accepts 违纪/优秀 or violation/excellent.
type BehaviorTypeRequest struct {
	Name        string `json:"name" binding:"required,max=64" example:"迟到"`
	Category    string `json:"category" binding:"required" example:"违纪"`
	Description string `json:"description" example:"上课迟到"`
}

// BehaviorListResponse is a page of behaviors joined with their students
type BehaviorListResponse struct {
	Items      []models.BehaviorDetail `json:"items"`
	Pagination PaginationInfo          `json:"pagination"`
}

// UploadResponse points at a stored file
type UploadResponse struct {
	URL string `json:"url" example:"/uploads/images/5b0c.jpg"`
}

// BehaviorListQuery pages through the behavior log, optionally for one student
type BehaviorListQuery struct {
	Page      int   `form:"page" binding:"omitempty,min=1" example:"1"`
	Size      int   `form:"size" binding:"omitempty,min=1,max=100" example:"20"`
	StudentID int64 `form:"student_id" binding:"omitempty,gt=0" example:"1"`
}
