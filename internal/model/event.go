package model

import (
	"time"

	"timealign/pkg/app_errors"
)

// Event 活動模型：候選日期與小時區間皆為閉區間
type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	StartDate   time.Time `json:"start_date" db:"start_date"`
	EndDate     time.Time `json:"end_date" db:"end_date"`
	StartHour   int       `json:"start_hour" db:"start_hour"`
	EndHour     int       `json:"end_hour" db:"end_hour"`
	Timezone    string    `json:"timezone" db:"timezone"`
	Duration    *int      `json:"duration,omitempty" db:"duration"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Validate 檢查日期與小時區間
func (e *Event) Validate() error {
	if e.Title == "" {
		return app_errors.ErrInvalidInput
	}
	if e.EndDate.Before(e.StartDate) {
		return app_errors.ErrInvalidInput
	}
	if e.StartHour < 0 || e.EndHour > 23 || e.StartHour > e.EndHour {
		return app_errors.ErrInvalidInput
	}
	return nil
}

// CreateEventRequest 建立活動請求；ID 可由呼叫端指定（分享連結用的短碼）
type CreateEventRequest struct {
	ID          string  `json:"id"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	StartHour   int     `json:"start_hour" binding:"min=0,max=23"`
	EndHour     int     `json:"end_hour" binding:"min=0,max=23"`
	Timezone    string  `json:"timezone" binding:"required"`
	Duration    *int    `json:"duration"`
}
