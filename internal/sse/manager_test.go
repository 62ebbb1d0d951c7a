package sse

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewManager(logger)
}

func TestConnectDisconnect(t *testing.T) {
	m := newTestManager(t)

	client, err := m.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if client.ID == "" {
		t.Error("expected client ID")
	}
	if m.ClientCount() != 1 {
		t.Errorf("ClientCount: got %d, want 1", m.ClientCount())
	}

	m.Disconnect(client.ID)
	if m.ClientCount() != 0 {
		t.Errorf("ClientCount after disconnect: got %d, want 0", m.ClientCount())
	}

	// Disconnecting an unknown client is a no-op.
	m.Disconnect("sse_unknown")
}

func TestEmitDeliversToClient(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect(client.ID)

	book := &domain.Book{ID: 1, Title: "Dune"}
	m.Emit(store.Event{Type: store.EventBookCreated, Book: book})

	select {
	case event := <-client.EventChan:
		if event.Type != EventBookCreated {
			t.Errorf("Type: got %q, want %q", event.Type, EventBookCreated)
		}
		got, ok := event.Data.(*domain.Book)
		if !ok || got.Title != "Dune" {
			t.Errorf("Data: got %v", event.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestEmitDeleteCarriesID(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go m.Start(ctx)

	client, err := m.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer m.Disconnect(client.ID)

	m.Emit(store.Event{Type: store.EventBookDeleted, BookID: 7})

	select {
	case event := <-client.EventChan:
		if event.Type != EventBookDeleted {
			t.Errorf("Type: got %q, want %q", event.Type, EventBookDeleted)
		}
		got, ok := event.Data.(map[string]int64)
		if !ok || got["id"] != 7 {
			t.Errorf("Data: got %v", event.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestShutdownClosesClients(t *testing.T) {
	m := newTestManager(t)

	ctx, cancel := context.WithCancel(context.Background())
	go m.Start(ctx)

	client, err := m.Connect()
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}

	cancel()

	select {
	case <-client.Done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for client close")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	if err := m.Shutdown(shutdownCtx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	// Emit after shutdown must not panic.
	m.Emit(store.Event{Type: store.EventBookCreated, Book: &domain.Book{ID: 1}})
}
