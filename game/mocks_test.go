package game

import (
	"encoding/json"
	"net"
	"testing"

	"github.com/wfunc/wordparty/network"
	"github.com/wfunc/wordparty/room"
	"github.com/wfunc/wordparty/session"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

// sentMessage captures one outbound announcement.
type sentMessage struct {
	scope     string // "room", "others" or "direct"
	roomID    string
	excludeID string
	sessionID string
	msgID     uint16
	data      []byte
}

// MockBroadcaster records every announcement instead of delivering it.
type MockBroadcaster struct {
	messages []sentMessage
}

func (m *MockBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	m.messages = append(m.messages, sentMessage{scope: "room", roomID: roomID, msgID: msgID, data: data})
	return nil
}

func (m *MockBroadcaster) BroadcastToOthers(roomID, excludeID string, msgID uint16, data []byte) error {
	m.messages = append(m.messages, sentMessage{scope: "others", roomID: roomID, excludeID: excludeID, msgID: msgID, data: data})
	return nil
}

func (m *MockBroadcaster) SendTo(sessionID string, msgID uint16, data []byte) error {
	m.messages = append(m.messages, sentMessage{scope: "direct", sessionID: sessionID, msgID: msgID, data: data})
	return nil
}

// last returns the most recent message with the given id, if any.
func (m *MockBroadcaster) last(msgID uint16) (sentMessage, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].msgID == msgID {
			return m.messages[i], true
		}
	}
	return sentMessage{}, false
}

func (m *MockBroadcaster) count(msgID uint16) int {
	n := 0
	for _, msg := range m.messages {
		if msg.msgID == msgID {
			n++
		}
	}
	return n
}

func (m *MockBroadcaster) reset() {
	m.messages = nil
}

// fixture wires a Service with recording doubles.
type fixture struct {
	svc         *Service
	rooms       *room.Manager
	broadcaster *MockBroadcaster
}

func newFixture() *fixture {
	rooms := room.NewRoomManager()
	broadcaster := &MockBroadcaster{}
	return &fixture{
		svc:         NewService(rooms, broadcaster, []string{"Naam", "Jagah", "Janwar", "Cheez"}, 1),
		rooms:       rooms,
		broadcaster: broadcaster,
	}
}

func newTestSession(id string) *session.Session {
	return session.NewSession(id, &MockConnection{})
}

func payload(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal test payload: %v", err)
	}
	return data
}

// join adds a player through the real handler and returns its session.
func (f *fixture) join(t *testing.T, roomID, name string, isHost bool) *session.Session {
	t.Helper()
	sess := newTestSession("conn-" + name)
	f.svc.HandleJoinRoom(sess, payload(t, JoinRoomRequest{RoomID: roomID, Name: name, IsHost: isHost}))
	return sess
}

// mustRoom fetches a room the test expects to exist.
func (f *fixture) mustRoom(t *testing.T, roomID string) *room.Room {
	t.Helper()
	r, exists := f.rooms.Get(roomID)
	if !exists {
		t.Fatalf("room %s does not exist", roomID)
	}
	return r
}
