// room/room.go
package room

import (
	"sync"
	"time"

	"github.com/wfunc/wordparty/state"
)

// Room 一局游戏的全部状态。玩家列表保持加入顺序，评审轮换和
// 平分排名都依赖这个顺序。
//
// 除 Manager 的方法外，所有读写都要求调用方先 Lock 房间：每个事件
// 处理函数对房间整体持锁，房间内的事件严格串行。
type Room struct {
	sync.Mutex

	RoomID           string
	Players          []*Player
	Status           *state.Machine
	Categories       []string
	CurrentRound     int
	TotalRounds      int
	JudgingIndex     int
	CurrentLetter    string
	AvailableAvatars []Avatar
	CreatedAt        time.Time
}

// NewRoom 创建一个新房间
func NewRoom(roomID string, categories []string, totalRounds int) *Room {
	return &Room{
		RoomID:           roomID,
		Players:          make([]*Player, 0),
		Status:           state.NewMachine(),
		Categories:       categories,
		CurrentRound:     1,
		TotalRounds:      totalRounds,
		JudgingIndex:     0,
		AvailableAvatars: newAvatarPool(),
		CreatedAt:        time.Now(),
	}
}

// AddPlayer 追加到玩家列表末尾
func (r *Room) AddPlayer(p *Player) {
	r.Players = append(r.Players, p)
}

// RemovePlayer 按连接标识移除，返回被移除的玩家
func (r *Room) RemovePlayer(socketID string) (*Player, bool) {
	for i, p := range r.Players {
		if p.SocketID == socketID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return p, true
		}
	}
	return nil, false
}

// GetPlayer 按连接标识查找玩家
func (r *Room) GetPlayer(socketID string) (*Player, bool) {
	for _, p := range r.Players {
		if p.SocketID == socketID {
			return p, true
		}
	}
	return nil, false
}

// Participants 过滤出非旁观者，顺序 = 加入顺序。judgingIndex 只对
// 这个即时重算的列表有意义。
func (r *Room) Participants() []*Player {
	participants := make([]*Player, 0, len(r.Players))
	for _, p := range r.Players {
		if !p.IsSpectator {
			participants = append(participants, p)
		}
	}
	return participants
}

// AllSubmitted 所有参与者都已提交答案。空参与者列表视为已全部提交，
// 与评审入口的空列表保护配合。
func (r *Room) AllSubmitted() bool {
	for _, p := range r.Players {
		if !p.IsSpectator && !p.HasSubmitted {
			return false
		}
	}
	return true
}

// IsEmpty 玩家列表为空
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// --- 房间注册表 ---

// Manager 进程级的房间注册表
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewRoomManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate 不存在则按给定设置创建；已存在时设置参数被忽略，
// 重复调用幂等。
func (m *Manager) GetOrCreate(roomID string, categories []string, totalRounds int) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if room, exists := m.rooms[roomID]; exists {
		return room
	}
	room := NewRoom(roomID, categories, totalRounds)
	m.rooms[roomID] = room
	return room
}

// Get 查询房间
func (m *Manager) Get(roomID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[roomID]
	return room, exists
}

// Remove 从注册表删除房间。只在断线清空房间时调用。
func (m *Manager) Remove(roomID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, roomID)
}

// FindByPlayer 遍历查找包含该连接的房间。连接标识没有按房间建索引，
// 断线处理只有这一种查找方式。
func (m *Manager) FindByPlayer(socketID string) (*Room, bool) {
	// Room locks are taken outside the registry lock so a handler that
	// holds a room lock can still reach the registry.
	for _, room := range m.Snapshot() {
		room.Lock()
		_, found := room.GetPlayer(socketID)
		room.Unlock()
		if found {
			return room, true
		}
	}
	return nil, false
}

// Count 当前活跃房间数
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// Snapshot 返回所有房间，供运维查询使用
func (m *Manager) Snapshot() []*Room {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	rooms := make([]*Room, 0, len(m.rooms))
	for _, room := range m.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
