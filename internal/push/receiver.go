package push

import (
	"context"
	"encoding/json"
	"sync"

	"timealign/internal/model"
	"timealign/pkg/logger"

	"go.uber.org/zap"
)

const (
	DefaultTitle = "TimeAlign"
	DefaultIcon  = "/icon-192.png"
	DefaultBadge = "/icon-192.png"
)

// 固定震動模式
var defaultVibration = []int{100, 50, 100}

// NotificationOptions 系統通知的顯示選項
type NotificationOptions struct {
	Body    string                 `json:"body"`
	Icon    string                 `json:"icon"`
	Badge   string                 `json:"badge"`
	Data    map[string]interface{} `json:"data"`
	Vibrate []int                  `json:"vibrate"`
}

// Notifier 系統層級通知的顯示端
type Notifier interface {
	ShowNotification(ctx context.Context, title string, options NotificationOptions) error
}

// ClickedNotification 被點擊的通知：取出 data 並關閉
type ClickedNotification interface {
	Data() map[string]interface{}
	Close()
}

// Receiver 推播接收端。一次 HandlePush 對應一個 inbound push event：
// 解析失敗不丟棄通知，雙路派送各自獨立失敗。
type Receiver struct {
	clients  *ClientRegistry
	notifier Notifier
	opener   WindowOpener
	log      *zap.Logger
}

func NewReceiver(clients *ClientRegistry, notifier Notifier, opener WindowOpener) *Receiver {
	return &Receiver{
		clients:  clients,
		notifier: notifier,
		opener:   opener,
		log:      logger.WithComponent("push"),
	}
}

// decodePayload 嘗試解析結構化 payload；失敗時整段當純文字 body，
// 一律回傳可顯示的 title/options
func decodePayload(raw []byte) (string, NotificationOptions) {
	var payload model.NotificationPayload
	if len(raw) > 0 && json.Unmarshal(raw, &payload) == nil {
		title := payload.Title
		if title == "" {
			title = DefaultTitle
		}
		options := NotificationOptions{
			Body:    payload.Body,
			Icon:    payload.Icon,
			Badge:   payload.Badge,
			Data:    payload.Data,
			Vibrate: defaultVibration,
		}
		if options.Icon == "" {
			options.Icon = DefaultIcon
		}
		if options.Badge == "" {
			options.Badge = DefaultBadge
		}
		if options.Data == nil {
			options.Data = map[string]interface{}{}
		}
		return title, options
	}

	// Fallback：payload 不是合法 JSON 物件
	return DefaultTitle, NotificationOptions{
		Body:    string(raw),
		Icon:    DefaultIcon,
		Badge:   DefaultBadge,
		Data:    map[string]interface{}{},
		Vibrate: defaultVibration,
	}
}

// HandlePush 雙路派送：同時廣播給所有開啟頁面（讓前景頁面內嵌顯示）
// 並顯示系統通知。廣播失敗只記 log，不影響系統通知；兩路都完成才返回，
// 對應 service worker 以 waitUntil 延長事件生命週期的要求。
func (r *Receiver) HandlePush(ctx context.Context, raw []byte) error {
	title, options := decodePayload(raw)

	var wg sync.WaitGroup
	var notifyErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		r.broadcast(title, options)
	}()
	go func() {
		defer wg.Done()
		notifyErr = r.notifier.ShowNotification(ctx, title, options)
	}()
	wg.Wait()

	if notifyErr != nil {
		r.log.Error("show notification failed", zap.Error(notifyErr))
		return notifyErr
	}
	return nil
}

func (r *Receiver) broadcast(title string, options NotificationOptions) {
	msg := PageMessage{
		Type: "push",
		Payload: MessagePayload{
			Title: title,
			Body:  options.Body,
			Data:  options.Data,
		},
	}
	for _, c := range r.clients.MatchAll(true) {
		if err := c.PostMessage(msg); err != nil {
			r.log.Warn("post message to page failed", zap.String("client_id", c.ID()), zap.Error(err))
		}
	}
}

// HandleNotificationClick 先關閉通知，再把目標 URL 的既有頁面帶到前景；
// 沒有符合的頁面就開新視窗
func (r *Receiver) HandleNotificationClick(ctx context.Context, n ClickedNotification) error {
	n.Close()

	url := "/"
	if data := n.Data(); data != nil {
		if u, ok := data["url"].(string); ok && u != "" {
			url = u
		}
	}

	if found := r.clients.FindByURL(url); found != nil {
		return found.Focus(ctx)
	}
	return r.opener.OpenWindow(ctx, url)
}
