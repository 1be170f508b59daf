package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"sereno.app/mindgarden/internal/modules/game/dto"
	game "sereno.app/mindgarden/internal/modules/game/service"
	commonDto "sereno.app/mindgarden/pkg/dto"
	"sereno.app/mindgarden/pkg/response"
	"sereno.app/mindgarden/pkg/validator"
)

type GameHandler struct {
	service game.GameService
}

func NewGameHandler(service game.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) CompleteSession(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CompleteSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.service.CompleteSession(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *GameHandler) GetSessions(c *gin.Context) {
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

	sessions, err := h.service.GetSessions(c.Request.Context(), userID, filter.PerPage, (filter.Page-1)*filter.PerPage)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *GameHandler) GetProgress(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	progress, err := h.service.GetProgress(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": progress})
}
