package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"sereno.app/mindgarden/internal/modules/garden/dto"
	garden "sereno.app/mindgarden/internal/modules/garden/service"
	"sereno.app/mindgarden/pkg/response"
	"sereno.app/mindgarden/pkg/validator"
)

type GardenHandler struct {
	service garden.GardenService
}

func NewGardenHandler(service garden.GardenService) *GardenHandler {
	return &GardenHandler{service: service}
}

func (h *GardenHandler) RecordActivity(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.RecordActivity(c.Request.Context(), userID, req.ActivityType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// WaterTree is shorthand for recording a tree_watered activity.
func (h *GardenHandler) WaterTree(c *gin.Context) {
	h.recordFixed(c, garden.ActivityTreeWatered)
}

// Checkin is shorthand for recording the daily checkin.
func (h *GardenHandler) Checkin(c *gin.Context) {
	h.recordFixed(c, garden.ActivityCheckin)
}

func (h *GardenHandler) recordFixed(c *gin.Context, activityType string) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.service.RecordActivity(c.Request.Context(), userID, activityType)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GardenHandler) GetState(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	state, err := h.service.GetState(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *GardenHandler) GetStats(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	stats, err := h.service.GetStats(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *GardenHandler) SetAmbientMode(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.SetAmbientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.SetAmbientMode(c.Request.Context(), userID, req.AmbientMode); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ambient mode updated"})
}

func (h *GardenHandler) GetAchievements(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	achievements, err := h.service.ListAchievements(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// RunDecay lets an operator trigger the decay batch outside the
// scheduled cadence. Admin only.
func (h *GardenHandler) RunDecay(c *gin.Context) {
	updated, err := h.service.RunDecay(c.Request.Context(), time.Now())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DecayResponse{UpdatedStates: updated})
}
