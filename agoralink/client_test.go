package agoralink

import (
	"context"
	"errors"
	"testing"
)

func TestClientEmitNotConnected(t *testing.T) {
	c := NewClient(DefaultConfig())
	err := c.Emit(context.Background(), EventJoinRoom, "room-1")
	if err == nil {
		t.Fatalf("expected error when not connected")
	}
	if !errors.Is(err, NewError(ErrorNotConnected, "")) {
		t.Fatalf("expected not_connected error, got %v", err)
	}
}

func TestClientConnectEmptyURL(t *testing.T) {
	c := NewClient(DefaultConfig())
	if err := c.Connect(context.Background()); err == nil {
		t.Fatalf("expected error for empty socket URL")
	}
}

func TestClientID(t *testing.T) {
	c := NewClient(DefaultConfig())
	if c.ClientID() == "" {
		t.Fatalf("client id should not be empty")
	}
	if c.ClientID() != c.ClientID() {
		t.Fatalf("client id should be stable")
	}
	if NewClient(DefaultConfig()).ClientID() == c.ClientID() {
		t.Fatalf("client ids should differ between clients")
	}
}
