package model

import "time"

// PushSubscription Web Push 訂閱紀錄；p256dh/auth 為瀏覽器端金鑰
type PushSubscription struct {
	ID        int       `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	TenantID  *string   `json:"tenant_id,omitempty" db:"tenant_id"`
	Endpoint  string    `json:"endpoint" db:"endpoint"`
	P256dh    string    `json:"p256dh" db:"p256dh"`
	Auth      string    `json:"auth" db:"auth"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotificationPayload 推播內容；Data 內容原樣傳遞，Data["url"] 供點擊導向
type NotificationPayload struct {
	Title string                 `json:"title,omitempty"`
	Body  string                 `json:"body,omitempty"`
	Icon  string                 `json:"icon,omitempty"`
	Badge string                 `json:"badge,omitempty"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// NotificationJob 一筆待派送的推播工作，經由 queue 交給 worker
type NotificationJob struct {
	EventID  string              `json:"event_id"`
	TenantID *string             `json:"tenant_id,omitempty"`
	Payload  NotificationPayload `json:"payload"`
}

// SubscribeRequest 建立推播訂閱請求
type SubscribeRequest struct {
	EventID  string  `json:"event_id" binding:"required"`
	TenantID *string `json:"tenant_id"`
	Endpoint string  `json:"endpoint" binding:"required"`
	P256dh   string  `json:"p256dh" binding:"required"`
	Auth     string  `json:"auth" binding:"required"`
}
