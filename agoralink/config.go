package agoralink

import "time"

// Config controls how the SDK connects and how a room session behaves.
type Config struct {
	SocketURL  string // websocket endpoint, e.g. "wss://host/socket"
	APIBaseURL string // REST API root, e.g. "https://host/api"
	Token      string // bearer token sent in the hello frame
	Username   string // display name announced in the hello frame

	HandshakeTimeout time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration

	// TypingTimeout is the idle gap after which "stop typing" is emitted
	// for the local user.
	TypingTimeout time.Duration

	// AlertDuration is the auto-dismiss window for dispatched alerts.
	AlertDuration time.Duration
}

// DefaultConfig returns sensible defaults.
// Set a timeout to 0 to disable it.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     10 * time.Second,
		TypingTimeout:    2 * time.Second,
		AlertDuration:    3 * time.Second,
	}
}
