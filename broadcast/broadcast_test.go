package broadcast

import (
	"net"
	"testing"

	"github.com/wfunc/wordparty/network"
	"github.com/wfunc/wordparty/session"
)

// recordingConn counts delivered packets per connection.
type recordingConn struct {
	received []uint16
}

func (c *recordingConn) Send(msgID uint16, data []byte) error {
	c.received = append(c.received, msgID)
	return nil
}
func (c *recordingConn) Close() error                         { return nil }
func (c *recordingConn) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (c *recordingConn) ReadPacket() (*network.Packet, error) { return nil, nil }

func setup() (*RoomBroadcaster, map[string]*recordingConn) {
	manager := session.NewManager()
	conns := make(map[string]*recordingConn)

	for id, roomID := range map[string]string{"a": "ABC", "b": "ABC", "c": "XYZ"} {
		conn := &recordingConn{}
		sess := session.NewSession(id, conn)
		sess.RoomID = roomID
		manager.Add(sess)
		conns[id] = conn
	}
	return NewRoomBroadcaster(manager), conns
}

func TestBroadcastToRoom(t *testing.T) {
	b, conns := setup()

	if err := b.BroadcastToRoom("ABC", 301, nil); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if len(conns["a"].received) != 1 || len(conns["b"].received) != 1 {
		t.Error("Every session in the room should receive the message")
	}
	if len(conns["c"].received) != 0 {
		t.Error("Sessions in other rooms must not receive the message")
	}
}

func TestBroadcastToOthers(t *testing.T) {
	b, conns := setup()

	if err := b.BroadcastToOthers("ABC", "a", 302, nil); err != nil {
		t.Fatalf("BroadcastToOthers failed: %v", err)
	}

	if len(conns["a"].received) != 0 {
		t.Error("The excluded session must not receive the message")
	}
	if len(conns["b"].received) != 1 {
		t.Error("The other session should receive the message")
	}
}

func TestSendTo(t *testing.T) {
	b, conns := setup()

	if err := b.SendTo("c", 304, nil); err != nil {
		t.Fatalf("SendTo failed: %v", err)
	}
	if len(conns["c"].received) != 1 {
		t.Error("The target session should receive the message")
	}

	if err := b.SendTo("ghost", 304, nil); err != ErrSessionNotFound {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}
