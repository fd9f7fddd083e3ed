package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/conduct/internal/app/models/dto"
	"github.com/yigit/conduct/internal/app/services"
	"github.com/yigit/conduct/internal/middleware"
)

// BehaviorTypeController handles the behavior type vocabulary
type BehaviorTypeController struct {
	typeService services.BehaviorTypeService
}

// NewBehaviorTypeController creates a new BehaviorTypeController
func NewBehaviorTypeController(typeService services.BehaviorTypeService) *BehaviorTypeController {
	return &BehaviorTypeController{typeService: typeService}
}

// GetAllBehaviorTypes lists every behavior type
// @Summary List behavior types
// @Tags behavior-types
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.BehaviorType} "Behavior types retrieved successfully"
// @Router /behavior-types [get]
func (c *BehaviorTypeController) GetAllBehaviorTypes(ctx *gin.Context) {
	types, err := c.typeService.GetAllBehaviorTypes(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(types))
}

// CreateBehaviorType adds a behavior type
// @Summary Create behavior type
// @Description category is 违纪 or 优秀 (violation / excellent are accepted too)
// @Tags behavior-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BehaviorTypeRequest true "Behavior type"
// @Success 201 {object} dto.APIResponse{data=models.BehaviorType} "Behavior type created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /behavior-types [post]
func (c *BehaviorTypeController) CreateBehaviorType(ctx *gin.Context) {
	var req dto.BehaviorTypeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	bt, err := c.typeService.CreateBehaviorType(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(bt))
}

// UpdateBehaviorType renames or recategorizes a behavior type
// @Summary Update behavior type
// @Tags behavior-types
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Behavior type ID" Format(int64) minimum(1)
// @Param request body dto.BehaviorTypeRequest true "Behavior type"
// @Success 200 {object} dto.APIResponse{data=models.BehaviorType} "Behavior type updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Behavior type not found"
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /behavior-types/{id} [put]
func (c *BehaviorTypeController) UpdateBehaviorType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "behavior type")
	if !ok {
		return
	}
	var req dto.BehaviorTypeRequest
	if !bindJSON(ctx, &req) {
		return
	}

	bt, err := c.typeService.UpdateBehaviorType(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(bt))
}

// DeleteBehaviorType deletes an unused behavior type
// @Summary Delete behavior type
// @Tags behavior-types
// @Produce json
// @Security BearerAuth
// @Param id path int true "Behavior type ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Behavior type deleted"
// @Failure 404 {object} dto.ErrorResponse "Behavior type not found"
// @Failure 409 {object} dto.ErrorResponse "Behavior type is in use"
// @Router /behavior-types/{id} [delete]
func (c *BehaviorTypeController) DeleteBehaviorType(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "behavior type")
	if !ok {
		return
	}

	if err := c.typeService.DeleteBehaviorType(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Behavior type deleted successfully"}))
}
