package agoralink

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Room describes the chat group being entered.
type Room struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Identity is the local participant's credential, read from the
// application's session store when a room is entered.
type Identity struct {
	User  User
	Token string
}

// EventBus is the transport boundary the session drives: it emits named
// events and routes inbound ones to callbacks. *Client implements it.
type EventBus interface {
	Emit(ctx context.Context, event string, data any) error
	OnMessageReceived(func(Message))
	OnUsersInRoom(func([]User))
	OnUserJoined(func(User))
	OnUserLeft(func(string))
	OnNotification(func(Notification))
	OnUserTyping(func(TypingEvent))
	OnUserStopTyping(func(TypingEvent))
	ResetHandlers()
}

// API is the REST boundary: history fetch and message persistence under
// a bearer credential. *rest.Client implements it.
type API interface {
	SetToken(token string)
	GetMessages(ctx context.Context, roomID string) ([]Message, error)
	SendMessage(ctx context.Context, content, groupID string) (*Message, error)
}

// RoomSession keeps one participant's view of one room consistent: it
// seeds the message backlog from the REST history, attaches the live
// event subscriptions, and tears everything down when the room is left.
// At most one room is active at a time.
type RoomSession struct {
	bus    EventBus
	api    API
	sink   AlertSink
	logger Logger

	store    *MessageStore
	presence *PresenceTracker
	typing   *TypingIndicators
	notifier *NotificationDispatcher

	typingTimeout time.Duration
	alertDuration time.Duration

	histWG sync.WaitGroup

	mu          sync.Mutex
	state       SessionState
	room        Room
	identity    Identity
	localTyping bool
	typingGen   uint64
	typingTimer *time.Timer
	onChange    func()
}

// NewRoomSession wires a session over the given transport and API
// boundaries. The sink may be nil when no alert presentation is wanted.
func NewRoomSession(bus EventBus, api API, sink AlertSink, cfg Config) *RoomSession {
	typingTimeout := cfg.TypingTimeout
	if typingTimeout <= 0 {
		typingTimeout = 2 * time.Second
	}
	alertDuration := cfg.AlertDuration
	if alertDuration <= 0 {
		alertDuration = 3 * time.Second
	}
	return &RoomSession{
		bus:           bus,
		api:           api,
		sink:          sink,
		logger:        noopLogger{},
		store:         NewMessageStore(),
		presence:      NewPresenceTracker(),
		typing:        NewTypingIndicators(),
		notifier:      NewNotificationDispatcher(sink, alertDuration),
		typingTimeout: typingTimeout,
		alertDuration: alertDuration,
		state:         StateIdle,
	}
}

// SetLogger overrides logger (optional).
func (s *RoomSession) SetLogger(l Logger) {
	if l == nil {
		return
	}
	s.logger = l
}

// SetOnChange registers a hook invoked after any visible state change
// (messages, presence, typing). Renderers use it to refresh their view.
// Reading accessors from the hook is fine; it must not call lifecycle
// methods (Enter, Leave, Send).
func (s *RoomSession) SetOnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *RoomSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ActiveRoom returns the entered room, if any.
func (s *RoomSession) ActiveRoom() (Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room, s.state == StateActive || s.state == StateEntering
}

// Messages returns the ordered backlog of the active room.
func (s *RoomSession) Messages() []Message { return s.store.Messages() }

// Users returns the room's current presence set.
func (s *RoomSession) Users() []User { return s.presence.Users() }

// TypingUsers returns the usernames currently composing.
func (s *RoomSession) TypingUsers() []string { return s.typing.Typing() }

// Enter makes room the active room under the given identity. If another
// room is active it is left first. The history fetch runs in the
// background and seeds the store when it completes; a fetch failure is
// logged and swallowed, so the room becomes active with an empty
// backlog rather than blocking entry.
func (s *RoomSession) Enter(ctx context.Context, room Room, id Identity) error {
	if room.ID == "" {
		return NewError(ErrorBadRequest, "empty room id")
	}

	s.mu.Lock()
	if s.state == StateActive || s.state == StateEntering {
		s.mu.Unlock()
		if err := s.Leave(ctx); err != nil {
			s.logger.Warn("implicit leave failed", map[string]any{"error": err.Error()})
		}
		s.mu.Lock()
	}
	s.setStateLocked(StateEntering)
	s.room = room
	s.identity = id
	s.mu.Unlock()

	s.api.SetToken(id.Token)

	s.histWG.Add(1)
	go func() {
		defer s.histWG.Done()
		s.loadHistory(ctx, room.ID)
	}()

	if err := s.bus.Emit(ctx, EventJoinRoom, room.ID); err != nil {
		s.logger.Warn("join room emit failed", map[string]any{"room": room.ID, "error": err.Error()})
	}

	s.subscribe(room.ID)

	s.mu.Lock()
	s.setStateLocked(StateActive)
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// Leave tears the active room down: emits "leave room", drops the event
// subscriptions, cancels the typing debounce, and clears all room
// state. Leaving with no active room is a no-op.
func (s *RoomSession) Leave(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateActive && s.state != StateEntering {
		s.mu.Unlock()
		return nil
	}
	roomID := s.room.ID
	s.setStateLocked(StateLeaving)
	s.typingGen++
	s.localTyping = false
	if s.typingTimer != nil {
		s.typingTimer.Stop()
		s.typingTimer = nil
	}
	s.mu.Unlock()

	if err := s.bus.Emit(ctx, EventLeaveRoom, roomID); err != nil {
		s.logger.Warn("leave room emit failed", map[string]any{"room": roomID, "error": err.Error()})
	}

	s.bus.ResetHandlers()

	s.store.Clear()
	s.presence.Clear()
	s.typing.Clear()

	s.mu.Lock()
	s.room = Room{}
	s.identity = Identity{}
	s.setStateLocked(StateIdle)
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

// Send persists content to the active room, broadcasts the stored
// message on the bus, and appends it locally. On failure an alert is
// routed to the sink and the error returned; nothing is appended, so
// the caller can retry with the same input. Empty or whitespace-only
// content is ignored.
func (s *RoomSession) Send(ctx context.Context, content string) (*Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	s.mu.Lock()
	if s.state != StateActive && s.state != StateEntering {
		s.mu.Unlock()
		return nil, NewError(ErrorNotConnected, "no active room")
	}
	roomID := s.room.ID
	s.mu.Unlock()

	msg, err := s.api.SendMessage(ctx, content, roomID)
	if err != nil {
		s.logger.Warn("send failed", map[string]any{"room": roomID, "error": err.Error()})
		if s.sink != nil {
			s.sink.Show(Alert{
				Title:    "Error sending message",
				Status:   AlertError,
				Duration: s.alertDuration,
				Closable: true,
			})
		}
		return nil, WrapError(ErrorSend, "error sending message", err)
	}

	if !s.roomActive(roomID) {
		// The room was left while the persist call was in flight; the
		// message is stored server-side but no longer belongs to any
		// local view.
		return msg, nil
	}

	broadcast := *msg
	broadcast.GroupID = roomID
	if err := s.bus.Emit(ctx, EventNewMessage, broadcast); err != nil {
		s.logger.Warn("new message emit failed", map[string]any{"room": roomID, "error": err.Error()})
	}

	s.store.Append(*msg)
	s.notifyChange()
	return msg, nil
}

// NotifyTyping records local input activity. The first call in an idle
// period emits a "typing" event; every call re-arms the stop-typing
// debounce, which emits "stop typing" after TypingTimeout of
// inactivity.
func (s *RoomSession) NotifyTyping(ctx context.Context) {
	s.mu.Lock()
	if s.state != StateActive && s.state != StateEntering {
		s.mu.Unlock()
		return
	}
	roomID := s.room.ID
	username := s.identity.User.Username
	first := !s.localTyping
	s.localTyping = true
	s.typingGen++
	gen := s.typingGen
	if s.typingTimer != nil {
		s.typingTimer.Stop()
	}
	s.typingTimer = time.AfterFunc(s.typingTimeout, func() { s.stopTyping(gen) })
	s.mu.Unlock()

	if first {
		if err := s.bus.Emit(ctx, EventTyping, TypingEvent{GroupID: roomID, Username: username}); err != nil {
			s.logger.Warn("typing emit failed", map[string]any{"room": roomID, "error": err.Error()})
		}
	}
}

// stopTyping is the debounce timer callback. The generation check makes
// a timer that fired concurrently with a re-arm a no-op, so a stale
// timer never clears fresh typing state.
func (s *RoomSession) stopTyping(gen uint64) {
	s.mu.Lock()
	if gen != s.typingGen || !s.localTyping {
		s.mu.Unlock()
		return
	}
	roomID := s.room.ID
	username := s.identity.User.Username
	s.localTyping = false
	s.typingTimer = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.bus.Emit(ctx, EventStopTyping, TypingEvent{GroupID: roomID, Username: username}); err != nil {
		s.logger.Warn("stop typing emit failed", map[string]any{"room": roomID, "error": err.Error()})
	}
}

func (s *RoomSession) loadHistory(ctx context.Context, roomID string) {
	msgs, err := s.api.GetMessages(ctx, roomID)
	if err != nil {
		s.logger.Warn("history fetch failed", map[string]any{"room": roomID, "error": err.Error()})
		return
	}
	if !s.roomActive(roomID) {
		return
	}
	s.store.Seed(msgs)
	s.notifyChange()
}

// subscribe installs the seven inbound handlers. Each one re-checks the
// captured room id before mutating state: an event already dispatched
// when the room is being torn down must not leak into the next room.
func (s *RoomSession) subscribe(roomID string) {
	s.bus.OnMessageReceived(func(m Message) {
		if !s.roomActive(roomID) {
			return
		}
		s.store.Append(m)
		s.notifyChange()
	})
	s.bus.OnUsersInRoom(func(users []User) {
		if !s.roomActive(roomID) {
			return
		}
		s.presence.SetAll(users)
		s.notifyChange()
	})
	s.bus.OnUserJoined(func(u User) {
		if !s.roomActive(roomID) {
			return
		}
		s.presence.Add(u)
		s.notifyChange()
	})
	s.bus.OnUserLeft(func(id string) {
		if !s.roomActive(roomID) {
			return
		}
		s.presence.Remove(id)
		s.notifyChange()
	})
	s.bus.OnNotification(func(n Notification) {
		if !s.roomActive(roomID) {
			return
		}
		s.notifier.Dispatch(n)
	})
	s.bus.OnUserTyping(func(ev TypingEvent) {
		if !s.roomActive(roomID) {
			return
		}
		s.typing.Mark(ev.Username)
		s.notifyChange()
	})
	s.bus.OnUserStopTyping(func(ev TypingEvent) {
		if !s.roomActive(roomID) {
			return
		}
		s.typing.Unmark(ev.Username)
		s.notifyChange()
	})
}

// roomActive reports whether events captured for roomID may still
// mutate session state.
func (s *RoomSession) roomActive(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.room.ID == roomID && (s.state == StateActive || s.state == StateEntering)
}

func (s *RoomSession) setStateLocked(next SessionState) {
	if s.state == next {
		return
	}
	s.logger.Debug("session state", map[string]any{"from": s.state.String(), "to": next.String(), "room": s.room.ID})
	s.state = next
}

func (s *RoomSession) notifyChange() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}
