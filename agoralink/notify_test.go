package agoralink

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type captureSink struct {
	mu     sync.Mutex
	alerts []Alert
}

func (c *captureSink) Show(a Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
}

func (c *captureSink) all() []Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Alert(nil), c.alerts...)
}

func TestNotificationUserJoined(t *testing.T) {
	sink := &captureSink{}
	d := NewNotificationDispatcher(sink, 3*time.Second)

	d.Dispatch(Notification{Type: "USER_JOINED", Message: "Bob joined"})

	alerts := sink.all()
	require.Len(t, alerts, 1)
	require.Equal(t, "New User", alerts[0].Title)
	require.Equal(t, "Bob joined", alerts[0].Description)
	require.Equal(t, AlertInfo, alerts[0].Status)
	require.Equal(t, 3*time.Second, alerts[0].Duration)
	require.True(t, alerts[0].Closable)
}

func TestNotificationGenericType(t *testing.T) {
	sink := &captureSink{}
	d := NewNotificationDispatcher(sink, 3*time.Second)

	d.Dispatch(Notification{Type: "ROOM_RENAMED", Message: "Room is now #general"})

	alerts := sink.all()
	require.Len(t, alerts, 1)
	require.Equal(t, "Notification", alerts[0].Title)
}

func TestNotificationOneDispatchPerEvent(t *testing.T) {
	sink := &captureSink{}
	d := NewNotificationDispatcher(sink, time.Second)

	n := Notification{Type: "USER_JOINED", Message: "Bob joined"}
	d.Dispatch(n)
	d.Dispatch(n)
	d.Dispatch(n)

	require.Len(t, sink.all(), 3)
}

func TestNotificationDefaultDuration(t *testing.T) {
	sink := &captureSink{}
	d := NewNotificationDispatcher(sink, 0)

	d.Dispatch(Notification{Type: "X", Message: "y"})

	require.Equal(t, 3*time.Second, sink.all()[0].Duration)
}

func TestNotificationNilSink(t *testing.T) {
	d := NewNotificationDispatcher(nil, time.Second)
	d.Dispatch(Notification{Type: "X", Message: "y"})
}
