package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	commonDto "sereno.app/mindgarden/pkg/dto"
	"sereno.app/mindgarden/internal/modules/mood/dto"
	mood "sereno.app/mindgarden/internal/modules/mood/service"
	"sereno.app/mindgarden/pkg/response"
	"sereno.app/mindgarden/pkg/validator"
)

type MoodHandler struct {
	service mood.MoodService
}

func NewMoodHandler(service mood.MoodService) *MoodHandler {
	return &MoodHandler{service: service}
}

func (h *MoodHandler) CreateMood(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.CreateMood(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *MoodHandler) GetMoods(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var filter commonDto.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.Normalize()

	if filter.Since != "" {
		since, err := time.Parse("2006-01-02", filter.Since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be a YYYY-MM-DD date"})
			return
		}
		moods, err := h.service.GetMoodsSince(c.Request.Context(), userID, since)
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		c.JSON(http.StatusOK, moods)
		return
	}

	moods, err := h.service.GetMoods(c.Request.Context(), userID, filter.PerPage, (filter.Page-1)*filter.PerPage)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, moods)
}

func (h *MoodHandler) GetWeeklySummary(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	summary, err := h.service.GetWeeklySummary(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
