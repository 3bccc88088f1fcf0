package rest

import "github.com/Aishwaryagunjal6/agoralink-sdk-go/agoralink"

// RegisterRequest is the request body for user registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for user login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the signed-in user info the application keeps in its
// session store between logins.
type AuthResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// Identity converts the auth response into the credential a RoomSession
// takes at entry.
func (a *AuthResponse) Identity() agoralink.Identity {
	return agoralink.Identity{
		User:  agoralink.User{ID: a.ID, Username: a.Username},
		Token: a.Token,
	}
}

type sendMessageRequest struct {
	Content string `json:"content"`
	GroupID string `json:"groupId"`
}

// ErrorResponse represents an API error response. The server is not
// consistent about the field name, so both are accepted.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Text returns whichever error field the server populated.
func (e ErrorResponse) Text() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
