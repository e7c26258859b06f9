package handler

import (
	"net/http"

	"timealign/internal/mailer"
	"timealign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotifyHandler struct {
	mailer mailer.Mailer
}

func NewNotifyHandler(mailer mailer.Mailer) *NotifyHandler {
	return &NotifyHandler{mailer: mailer}
}

func (h *NotifyHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/notify", h.Notify)
}

type NotifyRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (h *NotifyHandler) Notify(c *gin.Context) {
	var req NotifyRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if !h.mailer.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "MAILER_NOT_CONFIGURED"})
		return
	}

	subject := req.Subject
	if subject == "" {
		subject = "TimeAlign Notification"
	}
	html := req.HTML
	if html == "" {
		html = "<p>You have a new update.</p>"
	}

	if err := h.mailer.Send(c, req.To, subject, html, ""); err != nil {
		logger.WithComponent("handler").Error("send notify email failed", zap.String("to", req.To), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
