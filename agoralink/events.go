package agoralink

import "time"

// Event names match the AgoraLink socket protocol verbatim.
const (
	// Emitted by the client.
	EventJoinRoom   = "join room"
	EventLeaveRoom  = "leave room"
	EventNewMessage = "new message"
	EventTyping     = "typing"
	EventStopTyping = "stop typing"

	// Received from the server.
	EventMessageReceived = "message received"
	EventUsersInRoom     = "users in room"
	EventUserJoined      = "user joined"
	EventUserLeft        = "user left"
	EventNotification    = "notification"
	EventUserTyping      = "user typing"
	EventUserStopTyping  = "user stop typing"
)

// User identifies a chat participant. The id keys presence entries;
// the username keys typing indicators.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Message is one chat message as persisted by the server. Messages are
// immutable once created.
type Message struct {
	ID        string    `json:"_id"`
	Sender    User      `json:"sender"`
	Content   string    `json:"content"`
	GroupID   string    `json:"groupId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is a server-side announcement routed to the alert sink.
type Notification struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NotificationUserJoined is the one notification type with dedicated
// presentation; every other type gets the generic treatment.
const NotificationUserJoined = "USER_JOINED"

// TypingEvent signals that a user started or stopped composing.
type TypingEvent struct {
	GroupID  string `json:"groupId,omitempty"`
	Username string `json:"username"`
}
