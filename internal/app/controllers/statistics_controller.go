package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/services"
	"github.com/yigit/conduct/internal/middleware"
)

// StatisticsController serves the dashboard figures
type StatisticsController struct {
	statsService services.StatisticsService
}

// NewStatisticsController creates a new StatisticsController
func NewStatisticsController(statsService services.StatisticsService) *StatisticsController {
	return &StatisticsController{statsService: statsService}
}

// GetStatistics returns the dashboard rollup
// @Summary Behavior statistics
// @Description Totals, distinct students, type distribution, per-grade counts and daily series over the filtered behaviors
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param grade query string false "Grade, e.g. 高一"
// @Param start_date query string false "Inclusive start, YYYY-MM-DD or RFC3339"
// @Param end_date query string false "Inclusive end, YYYY-MM-DD or RFC3339"
// @Success 200 {object} dto.APIResponse{data=models.Statistics} "Statistics"
// @Failure 400 {object} dto.ErrorResponse "Malformed date"
// @Router /statistics [get]
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	var query dto.StatisticsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	stats, err := c.statsService.GetStatistics(ctx.Request.Context(), query.Grade, query.StartDate, query.EndDate)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}

// GetBehaviorTrends returns zero-filled daily counts for the last N days
// @Summary Behavior trends
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window length in days" default(7) minimum(1) maximum(366)
// @Success 200 {object} dto.APIResponse{data=models.BehaviorTrends} "Trends"
// @Failure 400 {object} dto.ErrorResponse "Invalid days"
// @Router /statistics/behavior-trends [get]
func (c *StatisticsController) GetBehaviorTrends(ctx *gin.Context) {
	var query dto.TrendsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	trends, err := c.statsService.GetBehaviorTrends(ctx.Request.Context(), query.Days)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trends))
}

// GetGradeComparison returns per-grade counts
// @Summary Grade comparison
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.GradeComparison} "Per-grade counts"
// @Router /statistics/grade-comparison [get]
func (c *StatisticsController) GetGradeComparison(ctx *gin.Context) {
	cmp, err := c.statsService.GetGradeComparison(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(cmp))
}

// GetBehaviorTypeStats returns usage counts per behavior type
// @Summary Behavior type usage
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.BehaviorTypeCount} "Usage per type"
// @Router /statistics/behavior-types [get]
func (c *StatisticsController) GetBehaviorTypeStats(ctx *gin.Context) {
	stats, err := c.statsService.GetBehaviorTypeStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats))
}
