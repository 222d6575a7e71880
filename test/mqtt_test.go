package test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/deenbuddy/minaret/internal/http/middleware"
)

// TestMQTTPublish requires a broker on localhost; it skips otherwise.
func TestMQTTPublish(t *testing.T) {
	middleware.SetBrokerURL("tcp://localhost:1883")
	if err := middleware.InitMQTT(); err != nil {
		t.Skipf("MQTT broker not available, skipping: %v", err)
	}
	defer middleware.CleanupMQTT()

	payload, err := json.Marshal(map[string]any{
		"prayer": "maghrib",
		"time":   "19:42",
		"date":   time.Now().UTC().Format(time.DateOnly),
	})
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}

	if err := middleware.PublishToBoard("test-board-001", "adhan", payload); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if err := middleware.ConnectBoard("test-board-001"); err != nil {
		t.Fatalf("board connect failed: %v", err)
	}
	defer middleware.DisconnectBoard("test-board-001")

	boards := middleware.ConnectedBoards()
	found := false
	for _, s := range boards {
		if s == "test-board-001" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected test-board-001 in connected boards, got %v", boards)
	}
}
