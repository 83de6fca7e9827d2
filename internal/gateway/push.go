package gateway

import (
	"encoding/json"

	"github.com/gorilla/websocket"

	"github.com/mpriestly/slotbook/internal/logger"
	"github.com/mpriestly/slotbook/internal/models"
)

// MessageSetInterview is the only push message type the feed carries: an
// authoritative interview change for one appointment.
const MessageSetInterview = "SET_INTERVIEW"

// PushMessage is a server-initiated state change delivered over the live
// feed. A nil Interview means the appointment was cancelled.
type PushMessage struct {
	Type      string            `json:"type"`
	ID        int               `json:"id"`
	Interview *models.Interview `json:"interview"`
}

// PushStream is a best-effort live-update feed. Messages are delivered on
// Messages until the connection drops, at which point the channel is closed.
// No reconnection is attempted.
type PushStream struct {
	conn     *websocket.Conn
	messages chan PushMessage
}

// DialPush connects to the WebSocket feed at url and starts the read loop.
func DialPush(url string) (*PushStream, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	s := &PushStream{
		conn:     conn,
		messages: make(chan PushMessage),
	}
	go s.readLoop()
	return s, nil
}

// Messages returns the channel the feed delivers on. It is closed when the
// connection ends.
func (s *PushStream) Messages() <-chan PushMessage {
	return s.messages
}

// Close tears down the connection. The read loop then closes Messages.
func (s *PushStream) Close() error {
	return s.conn.Close()
}

func (s *PushStream) readLoop() {
	defer close(s.messages)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			logger.Debug("push stream closed", "error", err)
			return
		}
		var msg PushMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("discarding malformed push message", "error", err)
			continue
		}
		if msg.Type != MessageSetInterview {
			logger.Debug("ignoring push message", "type", msg.Type)
			continue
		}
		s.messages <- msg
	}
}
