package model

import (
	"fmt"
	"time"
)

// TimeSlot 一格可選時段：日曆日期 + 整點小時
type TimeSlot struct {
	Date time.Time `json:"date"`
	Hour int       `json:"hour"`
}

// Key 聚合用的 slot-key，格式 YYYY-MM-DD-H
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%s-%d", s.Date.Format("2006-01-02"), s.Hour)
}

// Participant 參與者模型。(event_id, name) 在單一活動內唯一，
// 由 repository 的條件式 upsert 保證。AuthToken 只在鎖定時存在，
// 不隨一般查詢回傳。
type Participant struct {
	ID           int        `json:"id" db:"id"`
	EventID      string     `json:"event_id" db:"event_id"`
	Name         string     `json:"name" db:"name"`
	Email        *string    `json:"email,omitempty" db:"email"`
	Availability []TimeSlot `json:"availability" db:"availability"`
	Locked       bool       `json:"locked" db:"locked"`
	AuthToken    *string    `json:"-" db:"auth_token"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// UpsertParticipantRequest 提交可用時段請求
type UpsertParticipantRequest struct {
	Name         string     `json:"name" binding:"required"`
	Email        *string    `json:"email"`
	Availability []TimeSlot `json:"availability" binding:"required"`
	Lock         bool       `json:"lock"`
	Token        string     `json:"token"`
}

// UpsertParticipantResponse 提交結果；AuthToken 僅在本次請求取得鎖時回傳，
// 呼叫端須以 event+name 為 key 保存供後續編輯使用
type UpsertParticipantResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Locked    bool      `json:"locked"`
	AuthToken string    `json:"auth_token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
