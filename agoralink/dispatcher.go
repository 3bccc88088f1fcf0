package agoralink

import "sync"

// Dispatcher routes inbound frames to registered callbacks. Payloads
// that fail to decode or are missing required fields are dropped through
// the error callback without touching any state.
type Dispatcher struct {
	mu sync.RWMutex
	h  handlerSet
}

type handlerSet struct {
	messageReceived func(Message)
	usersInRoom     func([]User)
	userJoined      func(User)
	userLeft        func(string)
	notification    func(Notification)
	userTyping      func(TypingEvent)
	userStopTyping  func(TypingEvent)
	err             func(error)
}

func (d *Dispatcher) SetOnMessageReceived(fn func(Message)) {
	d.mu.Lock()
	d.h.messageReceived = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnUsersInRoom(fn func([]User)) {
	d.mu.Lock()
	d.h.usersInRoom = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnUserJoined(fn func(User)) {
	d.mu.Lock()
	d.h.userJoined = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnUserLeft(fn func(string)) {
	d.mu.Lock()
	d.h.userLeft = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnNotification(fn func(Notification)) {
	d.mu.Lock()
	d.h.notification = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnUserTyping(fn func(TypingEvent)) {
	d.mu.Lock()
	d.h.userTyping = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnUserStopTyping(fn func(TypingEvent)) {
	d.mu.Lock()
	d.h.userStopTyping = fn
	d.mu.Unlock()
}

func (d *Dispatcher) SetOnError(fn func(error)) {
	d.mu.Lock()
	d.h.err = fn
	d.mu.Unlock()
}

// Reset drops all event callbacks, keeping the error callback.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	err := d.h.err
	d.h = handlerSet{err: err}
	d.mu.Unlock()
}

// Dispatch routes one outbound frame. Callbacks are invoked without the
// dispatcher lock held, so they may re-register handlers.
func (d *Dispatcher) Dispatch(out Outbound) {
	d.mu.RLock()
	h := d.h
	d.mu.RUnlock()

	if out.Type == frameError && out.Error != nil {
		if h.err != nil {
			h.err(FromProtocolError(out.Error))
		}
		return
	}

	switch out.Event {
	case EventMessageReceived:
		if h.messageReceived == nil {
			return
		}
		var m Message
		if err := UnmarshalData(out.Data, &m); err != nil {
			d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal message received event", err))
			return
		}
		if m.ID == "" {
			d.fireError(h, NewError(ErrorMalformedEvent, "message received event without message id"))
			return
		}
		h.messageReceived(m)
	case EventUsersInRoom:
		if h.usersInRoom == nil {
			return
		}
		var users []User
		if err := UnmarshalData(out.Data, &users); err != nil {
			d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal users in room event", err))
			return
		}
		h.usersInRoom(users)
	case EventUserJoined:
		if h.userJoined == nil {
			return
		}
		var u User
		if err := UnmarshalData(out.Data, &u); err != nil {
			d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal user joined event", err))
			return
		}
		if u.ID == "" {
			d.fireError(h, NewError(ErrorMalformedEvent, "user joined event without user id"))
			return
		}
		h.userJoined(u)
	case EventUserLeft:
		if h.userLeft == nil {
			return
		}
		var id string
		if err := UnmarshalData(out.Data, &id); err != nil {
			d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal user left event", err))
			return
		}
		if id == "" {
			d.fireError(h, NewError(ErrorMalformedEvent, "user left event without user id"))
			return
		}
		h.userLeft(id)
	case EventNotification:
		if h.notification == nil {
			return
		}
		var n Notification
		if err := UnmarshalData(out.Data, &n); err != nil {
			d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal notification event", err))
			return
		}
		h.notification(n)
	case EventUserTyping:
		if h.userTyping == nil {
			return
		}
		ev, ok := d.typingEvent(h, out, "user typing")
		if !ok {
			return
		}
		h.userTyping(ev)
	case EventUserStopTyping:
		if h.userStopTyping == nil {
			return
		}
		ev, ok := d.typingEvent(h, out, "user stop typing")
		if !ok {
			return
		}
		h.userStopTyping(ev)
	}
}

func (d *Dispatcher) typingEvent(h handlerSet, out Outbound, kind string) (TypingEvent, bool) {
	var ev TypingEvent
	if err := UnmarshalData(out.Data, &ev); err != nil {
		d.fireError(h, WrapError(ErrorMalformedEvent, "failed to unmarshal "+kind+" event", err))
		return TypingEvent{}, false
	}
	if ev.Username == "" {
		d.fireError(h, NewError(ErrorMalformedEvent, kind+" event without username"))
		return TypingEvent{}, false
	}
	return ev, true
}

func (d *Dispatcher) fireError(h handlerSet, err error) {
	if h.err != nil && err != nil {
		h.err(err)
	}
}
