package models

import (
	"strings"
	"time"
)

// BehaviorCategory classifies a behavior type. Every type is exactly one category.
type BehaviorCategory string

const (
	CategoryViolation BehaviorCategory = "违纪"
	CategoryExcellent BehaviorCategory = "优秀"
)

// ParseBehaviorCategory accepts the stored values and their English aliases.
func ParseBehaviorCategory(s string) (BehaviorCategory, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryViolation), "violation":
		return CategoryViolation, true
	case string(CategoryExcellent), "excellent", "excellence":
		return CategoryExcellent, true
	default:
		return "", false
	}
}

// IsViolation is the single predicate every aggregation uses to split
// behaviors into the violation and excellent sides.
func (c BehaviorCategory) IsViolation() bool {
	return c == CategoryViolation
}

// BehaviorType is an entry of the controlled vocabulary behaviors are tagged with
type BehaviorType struct {
	ID          int64            `json:"id" db:"id" example:"1"`
	Name        string           `json:"name" db:"name" example:"迟到"`
	Category    BehaviorCategory `json:"category" db:"category" example:"违纪"`
	Description string           `json:"description" db:"description" example:"上课迟到"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// IsViolation reports whether behaviors of this type count as violations
func (t BehaviorType) IsViolation() bool {
	return t.Category.IsViolation()
}

// DefaultBehaviorTypes is the vocabulary seeded on first start
var DefaultBehaviorTypes = []BehaviorType{
	{Name: "迟到", Category: CategoryViolation, Description: "上课迟到"},
	{Name: "早退", Category: CategoryViolation, Description: "未经许可提前离开"},
	{Name: "打架", Category: CategoryViolation, Description: "与他人发生肢体冲突"},
	{Name: "作弊", Category: CategoryViolation, Description: "考试作弊"},
	{Name: "帮助同学", Category: CategoryExcellent, Description: "主动帮助有困难的同学"},
	{Name: "志愿服务", Category: CategoryExcellent, Description: "参与学校志愿服务活动"},
	{Name: "学习进步", Category: CategoryExcellent, Description: "学习成绩显著提升"},
	{Name: "获奖", Category: CategoryExcellent, Description: "在比赛或竞赛中获奖"},
}
