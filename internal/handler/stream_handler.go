package handler

import (
	"io"
	"net/http"
	"time"

	"timealign/internal/realtime"
	"timealign/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StreamHandler SSE 端點：每收到一次 refresh 訊號就送出一個 refresh 事件，
// 頁面收到後整批重抓參與者清單再重新聚合
type StreamHandler struct {
	refresh realtime.RefreshTrigger
}

func NewStreamHandler(refresh realtime.RefreshTrigger) *StreamHandler {
	return &StreamHandler{refresh: refresh}
}

func (h *StreamHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/events/:id/stream", h.Stream)
}

func (h *StreamHandler) Stream(c *gin.Context) {
	eventID := c.Param("id")

	signals, cancel, err := h.refresh.Subscribe(c.Request.Context(), eventID)
	if err != nil {
		logger.WithComponent("handler").Error("subscribe refresh failed", zap.String("event_id", eventID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// 定期 ping 撐住中間層的 idle timeout
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case _, ok := <-signals:
			if !ok {
				return false
			}
			c.SSEvent("refresh", eventID)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", "")
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
