package agoralink

import "time"

// AlertStatus categorizes an alert for presentation.
type AlertStatus string

const (
	AlertInfo  AlertStatus = "info"
	AlertError AlertStatus = "error"
)

// Alert is one user-visible notification handed to the sink.
type Alert struct {
	Title       string
	Description string
	Status      AlertStatus
	Duration    time.Duration // auto-dismiss window
	Closable    bool
}

// AlertSink receives alerts for presentation. Implementations decide
// how to render them: a toast, a log line, a test capture.
type AlertSink interface {
	Show(Alert)
}

// NotificationDispatcher maps inbound notification events to alerts.
// Every notification produces exactly one Show call; there is no
// persistence, deduplication, or rate limiting.
type NotificationDispatcher struct {
	sink     AlertSink
	duration time.Duration
}

func NewNotificationDispatcher(sink AlertSink, duration time.Duration) *NotificationDispatcher {
	if duration <= 0 {
		duration = 3 * time.Second
	}
	return &NotificationDispatcher{sink: sink, duration: duration}
}

// Dispatch forwards one notification to the sink. A USER_JOINED type is
// presented as "New User"; every other type falls back to the generic
// "Notification" title.
func (d *NotificationDispatcher) Dispatch(n Notification) {
	if d.sink == nil {
		return
	}
	title := "Notification"
	if n.Type == NotificationUserJoined {
		title = "New User"
	}
	d.sink.Show(Alert{
		Title:       title,
		Description: n.Message,
		Status:      AlertInfo,
		Duration:    d.duration,
		Closable:    true,
	})
}
