package handler

import (
	"net/http"
	"time"

	"timealign/internal/model"
	"timealign/internal/service"
	"timealign/pkg/app_errors"
	"timealign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PushHandler struct {
	service service.PushService
}

func NewPushHandler(service service.PushService) *PushHandler {
	return &PushHandler{service: service}
}

func (h *PushHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1/push")
	{
		router.POST("subscriptions", h.Subscribe)
		router.DELETE("subscriptions", h.Unsubscribe)
		router.GET("status", h.Status)
		router.GET("list", h.List)
		router.GET("health", h.Health)
	}
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req model.SubscribeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	sub, err := h.service.Subscribe(c, req)
	if err != nil {
		h.handleError(c, err, "Subscribe")
		return
	}
	c.JSON(http.StatusCreated, sub)
}

type UnsubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	if err := h.service.Unsubscribe(c, req.Endpoint); err != nil {
		h.handleError(c, err, "Unsubscribe")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type PushStatusQuery struct {
	EventID string `form:"eventId" binding:"required"`
}

func (h *PushHandler) Status(c *gin.Context) {
	var q PushStatusQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	count, err := h.service.Count(c, q.EventID)
	if err != nil {
		h.handleError(c, err, "Status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": count})
}

type PushListQuery struct {
	EventID  string  `form:"eventId" binding:"required"`
	TenantID *string `form:"tenantId"`
}

// List 列出指定活動的全部訂閱（僅供診斷）
func (h *PushHandler) List(c *gin.Context) {
	var q PushListQuery
	if err := BindQuery(c, &q); err != nil {
		return
	}
	subs, err := h.service.List(c, q.EventID, q.TenantID)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}

	type subscriptionView struct {
		Endpoint     string    `json:"endpoint"`
		EndpointTail string    `json:"endpointTail"`
		P256dh       string    `json:"p256dh"`
		Auth         string    `json:"auth"`
		CreatedAt    time.Time `json:"created_at"`
	}
	list := make([]subscriptionView, 0, len(subs))
	for _, s := range subs {
		tail := s.Endpoint
		if len(tail) > 32 {
			tail = tail[len(tail)-32:]
		}
		list = append(list, subscriptionView{
			Endpoint:     s.Endpoint,
			EndpointTail: tail,
			P256dh:       s.P256dh,
			Auth:         s.Auth,
			CreatedAt:    s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "count": len(list), "subscriptions": list})
}

func (h *PushHandler) Health(c *gin.Context) {
	hasPublic, hasPrivate := h.service.VAPIDConfigured()
	if !hasPublic || !hasPrivate {
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":            false,
			"error":         "VAPID keys not configured",
			"hasPublicKey":  hasPublic,
			"hasPrivateKey": hasPrivate,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"hasPublicKey":  hasPublic,
		"hasPrivateKey": hasPrivate,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *PushHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == app_errors.ErrSubscriptionNotFound:
		log.Warn("Subscription not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
