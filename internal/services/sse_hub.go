package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SSEHub manages Server-Sent Events connections for streaming chain stage
// events to clients watching a blog post generation.
type SSEHub struct {
	// Map of post IDs to subscribed client channels
	clients map[string]map[chan []byte]bool
	mu      sync.RWMutex
}

// NewSSEHub creates a new SSE hub
func NewSSEHub() *SSEHub {
	return &SSEHub{
		clients: make(map[string]map[chan []byte]bool),
	}
}

// RegisterClient registers a new SSE client for a blog post
func (h *SSEHub) RegisterClient(postID string) chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	clientChan := make(chan []byte, 10) // Buffer size 10

	if h.clients[postID] == nil {
		h.clients[postID] = make(map[chan []byte]bool)
	}
	h.clients[postID][clientChan] = true

	logrus.Infof("SSE client registered for post %s (total clients: %d)", postID, len(h.clients[postID]))
	return clientChan
}

// UnregisterClient unregisters an SSE client
func (h *SSEHub) UnregisterClient(postID string, clientChan chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[postID] != nil {
		delete(h.clients[postID], clientChan)
		close(clientChan)

		// Clean up empty maps
		if len(h.clients[postID]) == 0 {
			delete(h.clients, postID)
		}
	}

	logrus.Infof("SSE client unregistered for post %s (remaining clients: %d)", postID, len(h.clients[postID]))
}

// BroadcastStage broadcasts a chain stage event to all clients subscribed
// to the post. data is serialized as the event payload.
func (h *SSEHub) BroadcastStage(postID, event string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := h.clients[postID]
	if len(clients) == 0 {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		logrus.Errorf("Failed to marshal stage payload for SSE: %v", err)
		return
	}

	// Frontend EventSource dispatches on the event type
	message := fmt.Sprintf("event: %s\ndata: %s\n\n", event, string(payload))

	// Send to all clients (non-blocking)
	for clientChan := range clients {
		select {
		case clientChan <- []byte(message):
		default:
			// Channel is full, skip this client
			logrus.Warnf("SSE client channel full, skipping: %s", postID)
		}
	}
}

// GetClientCount returns the number of clients for a specific post
func (h *SSEHub) GetClientCount(postID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, exists := h.clients[postID]; exists {
		return len(clients)
	}
	return 0
}

// SendHeartbeat sends a heartbeat comment to keep connections alive
func (h *SSEHub) SendHeartbeat(postID string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, exists := h.clients[postID]
	if !exists {
		return
	}

	heartbeat := fmt.Sprintf(": heartbeat %s\n\n", time.Now().Format(time.RFC3339))
	for clientChan := range clients {
		select {
		case clientChan <- []byte(heartbeat):
		default:
			// Skip if channel is full
		}
	}
}
