package push

import (
	"context"
	"strings"
	"sync"
)

// MessagePayload 廣播給頁面的內容
type MessagePayload struct {
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data"`
}

// PageMessage 送往每個開啟頁面的訊息，type 固定為 "push"
type PageMessage struct {
	Type    string         `json:"type"`
	Payload MessagePayload `json:"payload"`
}

// PageClient 一個開啟中的頁面連線（實務上是 SSE / WebSocket 的一端）
type PageClient interface {
	ID() string
	URL() string
	PostMessage(msg PageMessage) error
	Focus(ctx context.Context) error
}

// WindowOpener 找不到既有頁面時開新視窗用
type WindowOpener interface {
	OpenWindow(ctx context.Context, url string) error
}

// ClientRegistry 目前連線中的頁面。controlled 區分頁面是否已被
// 本 worker 接管；廣播時兩者都收得到。
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]registeredClient
}

type registeredClient struct {
	client     PageClient
	controlled bool
}

func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		clients: make(map[string]registeredClient),
	}
}

func (r *ClientRegistry) Register(client PageClient, controlled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID()] = registeredClient{client: client, controlled: controlled}
}

func (r *ClientRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// MatchAll includeUncontrolled 為 true 時包含尚未被接管的頁面
func (r *ClientRegistry) MatchAll(includeUncontrolled bool) []PageClient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]PageClient, 0, len(r.clients))
	for _, rc := range r.clients {
		if !rc.controlled && !includeUncontrolled {
			continue
		}
		matched = append(matched, rc.client)
	}
	return matched
}

// FindByURL 回傳第一個 URL 包含 target 子字串的頁面
func (r *ClientRegistry) FindByURL(target string) PageClient {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rc := range r.clients {
		if rc.client.URL() != "" && strings.Contains(rc.client.URL(), target) {
			return rc.client
		}
	}
	return nil
}
