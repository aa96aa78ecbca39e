package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"sccp/api"
)

const (
	initialReconnectDelay = 500 * time.Millisecond
	maxReconnectDelay     = 30 * time.Second
	writeTimeout          = 5 * time.Second
	reconcileTimeout      = 10 * time.Second
)

// ErrAuthRejected is returned when the realtime handshake is refused because
// the token is not accepted. Reconnecting would loop forever against the same
// rejection, so the channel gives up instead.
var ErrAuthRejected = errors.New("realtime: handshake rejected by server")

// errConnDropped marks a connection that reached the open state and then
// closed; the reconnect backoff restarts from scratch in that case.
var errConnDropped = errors.New("realtime: open connection dropped")

// NotificationAPI is the slice of the platform client the channel needs for
// seeding and reconciling the notification feed. *api.Client satisfies it.
type NotificationAPI interface {
	Notifications(ctx context.Context) ([]api.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// Conn is the subset of *websocket.Conn the channel uses.
type Conn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, typ websocket.MessageType, p []byte) error
	Close(code websocket.StatusCode, reason string) error
}

// DialFunc opens the realtime connection. The returned *http.Response is
// consulted on failure to distinguish auth rejections from transient faults.
type DialFunc func(ctx context.Context, endpoint string) (Conn, *http.Response, error)

// LiveMessage is a chat line pushed while the room is joined. The server
// pre-formats the text ("Name (Company): message"); the id exists only so
// renderers have a stable key.
type LiveMessage struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Channel owns the single realtime connection for the authenticated session
// and multiplexes chat-room traffic and the notification feed over it. Page
// code never touches the connection directly; it goes through JoinRoom,
// LeaveRoom, SendChat and the notification accessors.
type Channel struct {
	wsBaseURL string
	tokens    api.TokenSource
	backend   NotificationAPI
	dial      DialFunc
	newID     func() string
	logf      func(format string, args ...any)

	mu            sync.Mutex
	state         ReadyState
	conn          Conn
	currentRoom   int
	rooms         map[int][]LiveMessage
	notifications []api.Notification

	cancel context.CancelFunc
	done   chan struct{}
}

// NewChannel creates a channel rooted at wsBaseURL (e.g. ws://host:port).
// Nothing connects until Start is called with an authenticated session.
func NewChannel(wsBaseURL string, tokens api.TokenSource, backend NotificationAPI) *Channel {
	return &Channel{
		wsBaseURL: strings.TrimRight(wsBaseURL, "/"),
		tokens:    tokens,
		backend:   backend,
		dial:      defaultDial,
		newID:     uuid.NewString,
		logf:      log.Printf,
		rooms:     make(map[int][]LiveMessage),
	}
}

func defaultDial(ctx context.Context, endpoint string) (Conn, *http.Response, error) {
	conn, resp, err := websocket.Dial(ctx, endpoint, nil)
	if err != nil {
		return nil, resp, err
	}
	return conn, resp, nil
}

// Start seeds the notification feed and begins the connect/consume loop.
// Calling Start on a running channel is a no-op.
func (c *Channel) Start(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	go c.seedNotifications(runCtx)
	go func() {
		defer close(done)
		c.run(runCtx)
	}()
}

// Stop tears the connection down. No session means no connection.
func (c *Channel) Stop() {
	c.mu.Lock()
	cancel := c.cancel
	c.cancel = nil
	conn := c.conn
	done := c.done
	if conn != nil {
		c.state = StateClosing
	}
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "session ended")
	}
	cancel()
	if done != nil {
		<-done
	}
}

// State returns the connection's current lifecycle state.
func (c *Channel) State() ReadyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Channel) setState(state ReadyState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

func (c *Channel) endpoint() string {
	token := ""
	if c.tokens != nil {
		token = c.tokens.Token()
	}
	return c.wsBaseURL + "/ws?token=" + url.QueryEscape(token)
}

// run keeps exactly one connection alive until the context is cancelled.
// Transient failures reconnect with capped backoff; the backoff restarts
// whenever a connection had made it to open. An auth-rejected handshake stops
// the loop for good.
func (c *Channel) run(ctx context.Context) {
	defer c.setState(StateClosed)

	for {
		backoff := retry.WithCappedDuration(maxReconnectDelay, retry.NewFibonacci(initialReconnectDelay))
		err := retry.Do(ctx, backoff, func(ctx context.Context) error {
			opened, err := c.connectOnce(ctx)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, ErrAuthRejected) {
				return err
			}
			if opened {
				return errConnDropped
			}
			return retry.RetryableError(err)
		})

		switch {
		case errors.Is(err, errConnDropped):
			c.logf("realtime: connection closed, reconnecting")
		case errors.Is(err, context.Canceled), ctx.Err() != nil:
			return
		default:
			c.logf("realtime: giving up: %v", err)
			return
		}
	}
}

// connectOnce dials, consumes frames until the connection dies, and reports
// whether the open state was ever reached.
func (c *Channel) connectOnce(ctx context.Context) (opened bool, err error) {
	c.setState(StateConnecting)

	conn, resp, err := c.dial(ctx, c.endpoint())
	if err != nil {
		c.setState(StateClosed)
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return false, ErrAuthRejected
		}
		return false, err
	}

	c.mu.Lock()
	c.conn = conn
	c.state = StateOpen
	room := c.currentRoom
	c.mu.Unlock()

	// A room joined before the drop is rejoined on the fresh connection,
	// mirroring the chat view re-issuing JOIN whenever the state turns open.
	if room != 0 {
		c.send(joinFrame(room))
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.mu.Lock()
			c.conn = nil
			c.state = StateClosed
			c.mu.Unlock()
			return true, err
		}
		c.handleFrame(string(data))
	}
}

// send writes one text frame if and only if the connection is open. Calls in
// any other state are silently dropped; there is no queueing.
func (c *Channel) send(frame string) {
	c.mu.Lock()
	conn := c.conn
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || conn == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		c.logf("realtime: send failed: %v", err)
	}
}

// JoinRoom enters an RFQ's chat room. Joining a new room leaves the previous
// one first; the connection carries at most one room at a time.
func (c *Channel) JoinRoom(rfqID int) {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return
	}
	previous := c.currentRoom
	c.currentRoom = rfqID
	c.mu.Unlock()

	if previous != 0 && previous != rfqID {
		c.send(leaveFrame(previous))
	}
	c.send(joinFrame(rfqID))
}

// LeaveRoom exits an RFQ's chat room.
func (c *Channel) LeaveRoom(rfqID int) {
	c.mu.Lock()
	if c.state != StateOpen {
		c.mu.Unlock()
		return
	}
	if c.currentRoom == rfqID {
		c.currentRoom = 0
	}
	c.mu.Unlock()

	c.send(leaveFrame(rfqID))
}

// SendChat sends a chat line to an RFQ's room.
func (c *Channel) SendChat(rfqID int, text string) {
	c.mu.Lock()
	open := c.state == StateOpen
	c.mu.Unlock()
	if !open {
		return
	}
	c.send(chatFrame(rfqID, text))
}

// LiveMessages returns the chat lines received live for a room since it was
// first joined. The slice is append-only; entries are never edited or
// reordered.
func (c *Channel) LiveMessages(rfqID int) []LiveMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages := c.rooms[rfqID]
	out := make([]LiveMessage, len(messages))
	copy(out, messages)
	return out
}

// handleFrame routes one inbound frame by prefix. Unknown prefixes alter
// nothing.
func (c *Channel) handleFrame(frame string) {
	switch {
	case strings.HasPrefix(frame, chatPrefix):
		text := strings.TrimPrefix(frame, chatPrefix)
		c.mu.Lock()
		if c.currentRoom != 0 {
			c.rooms[c.currentRoom] = append(c.rooms[c.currentRoom], LiveMessage{ID: c.newID(), Text: text})
		}
		c.mu.Unlock()
	case strings.HasPrefix(frame, notificationPrefix):
		var notification api.Notification
		if err := json.Unmarshal([]byte(strings.TrimPrefix(frame, notificationPrefix)), &notification); err != nil {
			c.logf("realtime: bad notification payload: %v", err)
			return
		}
		c.mu.Lock()
		c.notifications = append([]api.Notification{notification}, c.notifications...)
		c.mu.Unlock()
	}
}
