package dto

// StatisticsQuery are the optional filters of the dashboard rollup.
// Dates are YYYY-MM-DD or RFC3339.
type StatisticsQuery struct {
	Grade     string `form:"grade" example:"高一"`
	StartDate string `form:"start_date" example:"2024-03-01"`
	EndDate   string `form:"end_date" example:"2024-03-31"`
}

// TrendsQuery selects the rolling window of the trend chart
type TrendsQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=366" example:"7"`
}
