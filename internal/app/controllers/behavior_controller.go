package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/services"
	"github.com/yigit/conduct/internal/middleware"
)

// BehaviorController handles the behavior log
type BehaviorController struct {
	behaviorService services.BehaviorService
}

// NewBehaviorController creates a new BehaviorController
func NewBehaviorController(behaviorService services.BehaviorService) *BehaviorController {
	return &BehaviorController{behaviorService: behaviorService}
}

// ListBehaviors returns one page of the behavior log
// @Summary List behaviors
// @Description Newest first, joined with student name, grade and class
// @Tags behaviors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20) maximum(100)
// @Param student_id query int false "Only this student's behaviors"
// @Success 200 {object} dto.APIResponse{data=dto.BehaviorListResponse} "Behaviors retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Router /behaviors [get]
func (c *BehaviorController) ListBehaviors(ctx *gin.Context) {
	var query dto.BehaviorListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	resp, err := c.behaviorService.ListBehaviors(ctx.Request.Context(), query.StudentID, query.Page, query.Size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetBehavior retrieves a behavior by ID
// @Summary Get behavior
// @Tags behaviors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Behavior ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Behavior} "Behavior retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Behavior not found"
// @Router /behaviors/{id} [get]
func (c *BehaviorController) GetBehavior(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "behavior")
	if !ok {
		return
	}

	behavior, err := c.behaviorService.GetBehaviorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(behavior))
}

// CreateBehavior records a behavior
// @Summary Record behavior
// @Description The student and behavior type must exist. date defaults to now.
// @Tags behaviors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BehaviorRequest true "Behavior"
// @Success 201 {object} dto.APIResponse{data=models.Behavior} "Behavior recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown student/behavior type"
// @Router /behaviors [post]
func (c *BehaviorController) CreateBehavior(ctx *gin.Context) {
	var req dto.BehaviorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	behavior, err := c.behaviorService.CreateBehavior(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(behavior))
}

// UpdateBehavior replaces a behavior record
// @Summary Update behavior
// @Tags behaviors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Behavior ID" Format(int64) minimum(1)
// @Param request body dto.BehaviorRequest true "Behavior"
// @Success 200 {object} dto.APIResponse{data=models.Behavior} "Behavior updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown student/behavior type"
// @Failure 404 {object} dto.ErrorResponse "Behavior not found"
// @Router /behaviors/{id} [put]
func (c *BehaviorController) UpdateBehavior(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "behavior")
	if !ok {
		return
	}
	var req dto.BehaviorRequest
	if !bindJSON(ctx, &req) {
		return
	}

	behavior := req.ToModel()
	behavior.ID = id
	updated, err := c.behaviorService.UpdateBehavior(ctx.Request.Context(), behavior)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(updated))
}

// DeleteBehavior deletes a behavior record
// @Summary Delete behavior
// @Tags behaviors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Behavior ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Behavior deleted"
// @Failure 404 {object} dto.ErrorResponse "Behavior not found"
// @Router /behaviors/{id} [delete]
func (c *BehaviorController) DeleteBehavior(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "behavior")
	if !ok {
		return
	}

	if err := c.behaviorService.DeleteBehavior(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Behavior deleted successfully"}))
}
