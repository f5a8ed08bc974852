package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSEHubRegisterAndBroadcast(t *testing.T) {
	hub := NewSSEHub()
	postID := "post-1"

	clientChan := hub.RegisterClient(postID)
	assert.Equal(t, 1, hub.GetClientCount(postID))

	hub.BroadcastStage(postID, StageTopics, map[string]interface{}{"topics": []string{"a", "b", "c"}})

	msg := string(<-clientChan)
	assert.True(t, strings.HasPrefix(msg, "event: topics\n"), "unexpected message: %q", msg)
	assert.Contains(t, msg, `"topics":["a","b","c"]`)
	assert.True(t, strings.HasSuffix(msg, "\n\n"))
}

func TestSSEHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewSSEHub()
	postID := "post-2"

	first := hub.RegisterClient(postID)
	second := hub.RegisterClient(postID)
	other := hub.RegisterClient("unrelated-post")
	assert.Equal(t, 2, hub.GetClientCount(postID))

	hub.BroadcastStage(postID, StageOutline, map[string]string{"outline": "Intro"})

	for _, ch := range []chan []byte{first, second} {
		msg := string(<-ch)
		assert.Contains(t, msg, "event: outline")
	}

	// The unrelated post's client sees nothing
	select {
	case msg := <-other:
		t.Fatalf("unexpected message on other post: %q", msg)
	default:
	}
}

func TestSSEHubUnregisterClosesChannel(t *testing.T) {
	hub := NewSSEHub()
	postID := "post-3"

	clientChan := hub.RegisterClient(postID)
	hub.UnregisterClient(postID, clientChan)

	_, open := <-clientChan
	assert.False(t, open)
	assert.Equal(t, 0, hub.GetClientCount(postID))

	// Broadcasting after the last client left is a no-op
	hub.BroadcastStage(postID, StageTopics, map[string]string{"x": "y"})
}

func TestSSEHubSkipsFullChannels(t *testing.T) {
	hub := NewSSEHub()
	postID := "post-4"

	clientChan := hub.RegisterClient(postID)

	// Fill the channel beyond its buffer; the hub must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			hub.BroadcastStage(postID, StageInitialContent, map[string]int{"i": i})
		}
		close(done)
	}()

	<-done
	require.Len(t, clientChan, cap(clientChan))
}

func TestSSEHubHeartbeat(t *testing.T) {
	hub := NewSSEHub()
	postID := "post-5"

	clientChan := hub.RegisterClient(postID)
	hub.SendHeartbeat(postID)

	msg := string(<-clientChan)
	assert.True(t, strings.HasPrefix(msg, ": heartbeat"))
}
