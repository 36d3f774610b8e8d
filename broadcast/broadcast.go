// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/wordparty/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// 广播接口。BroadcastToOthers 对应 socket.to(room) 的语义：
// 发给房间内除指定连接外的所有人。
type Broadcaster interface {
	BroadcastToRoom(roomID string, msgID uint16, data []byte) error
	BroadcastToOthers(roomID, excludeID string, msgID uint16, data []byte) error
	SendTo(sessionID string, msgID uint16, data []byte) error
}

// 基于会话管理器的广播器
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoomID(roomID) {
		if err := s.Send(msgID, data); err != nil {
			// 发送失败的连接交给它自己的读循环去收尾
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) BroadcastToOthers(roomID, excludeID string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoomID(roomID) {
		if s.GetID() == excludeID {
			continue
		}
		if err := s.Send(msgID, data); err != nil {
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) SendTo(sessionID string, msgID uint16, data []byte) error {
	s, exists := b.sessionManager.Get(sessionID)
	if !exists {
		return ErrSessionNotFound
	}
	return s.Send(msgID, data)
}
