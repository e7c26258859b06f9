package handler

import (
	"net/http"

	"timealign/internal/model"
	"timealign/internal/service"
	"timealign/pkg/app_errors"
	"timealign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ParticipantHandler struct {
	service service.ParticipantService
}

func NewParticipantHandler(service service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{service: service}
}

func (h *ParticipantHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.PUT("events/:id/participants", h.Upsert)
		router.GET("events/:id/participants", h.List)
		router.GET("events/:id/availability", h.Availability)
	}
}

func (h *ParticipantHandler) Upsert(c *gin.Context) {
	eventID := c.Param("id")

	var req model.UpsertParticipantRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	participant, err := h.service.Upsert(c, eventID, req)
	if err != nil {
		h.handleError(c, err, "Upsert")
		return
	}

	resp := model.UpsertParticipantResponse{
		ID:        participant.ID,
		Name:      participant.Name,
		Locked:    participant.Locked,
		CreatedAt: participant.CreatedAt,
	}
	// 鎖定列只有出示相符 token 才到得了這裡，回傳 token 讓呼叫端保存
	if participant.AuthToken != nil {
		resp.AuthToken = *participant.AuthToken
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := h.service.List(c, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, participants)
}

func (h *ParticipantHandler) Availability(c *gin.Context) {
	aggregation, err := h.service.Availability(c, c.Param("id"))
	if err != nil {
		h.handleError(c, err, "Availability")
		return
	}
	c.JSON(http.StatusOK, aggregation)
}

func (h *ParticipantHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == app_errors.ErrNameLocked:
		// 和一般錯誤區分開：前端要顯示「名字已被鎖定」專屬訊息
		log.Warn("Name locked")
		c.JSON(http.StatusConflict, gin.H{"error": "NAME_LOCKED"})
	case err == app_errors.ErrEventNotFound:
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case err == app_errors.ErrInvalidInput:
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
