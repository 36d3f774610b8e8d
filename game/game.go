// game/game.go
package game

import (
	"encoding/json"

	"github.com/wfunc/wordparty/broadcast"
	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/network"
	"github.com/wfunc/wordparty/room"
	"github.com/wfunc/wordparty/session"
	"github.com/wfunc/wordparty/state"
)

// Archiver 持久化一局打完的游戏。nil 表示不归档。
type Archiver interface {
	GameFinished(roomID string, categories []string, totalRounds int, ranked []*room.Player)
}

// Metrics is the slice of the monitor the game logic reports to.
type Metrics interface {
	IncGamesFinished()
}

// Service 处理所有游戏事件。
//
// 错误策略：客户端数据不合法、房间或玩家不存在时一律静默丢弃，
// 只记日志，不给客户端任何错误通道。
type Service struct {
	rooms       *room.Manager
	broadcaster broadcast.Broadcaster

	defaultCategories []string
	defaultRounds     int

	archiver Archiver // optional
	metrics  Metrics  // optional
}

func NewService(rooms *room.Manager, broadcaster broadcast.Broadcaster, defaultCategories []string, defaultRounds int) *Service {
	return &Service{
		rooms:             rooms,
		broadcaster:       broadcaster,
		defaultCategories: defaultCategories,
		defaultRounds:     defaultRounds,
	}
}

// SetArchiver 配置游戏归档
func (s *Service) SetArchiver(a Archiver) {
	s.archiver = a
}

// SetMetrics 配置指标上报
func (s *Service) SetMetrics(m Metrics) {
	s.metrics = m
}

// broadcastRoster 全量玩家列表。Caller must hold the room lock.
func (s *Service) broadcastRoster(r *room.Room) {
	data, _ := json.Marshal(r.Players)
	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeUpdatePlayerList, data)
}

// lockedRoom 查房间并加锁；不存在则按丢弃策略记日志
func (s *Service) lockedRoom(event, roomID string) (*room.Room, bool) {
	r, exists := s.rooms.Get(roomID)
	if !exists {
		logger.Log.Debugf("%s: unknown room %q, dropping", event, roomID)
		return nil, false
	}
	r.Lock()
	return r, true
}

// HandleJoinRoom 加入（或创建）房间。游戏进行中加入的玩家成为旁观者。
func (s *Service) HandleJoinRoom(sess *session.Session, data []byte) {
	var req JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.RoomID == "" {
		logger.Log.Debugf("joinRoom: bad payload from %s: %v", sess.GetID(), err)
		return
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = s.defaultCategories
	}
	totalRounds := req.TotalRounds
	if totalRounds <= 0 {
		totalRounds = s.defaultRounds
	}

	r := s.rooms.GetOrCreate(req.RoomID, categories, totalRounds)
	sess.RoomID = req.RoomID

	r.Lock()
	defer r.Unlock()

	avatar := r.AssignAvatar()
	player := room.NewPlayer(sess.GetID(), req.Name, req.IsHost, avatar, r.Status.Is(state.StatusPlaying))
	r.AddPlayer(player)

	logger.Log.Infof("player %s (%s) joined room %s, spectator=%v", req.Name, sess.GetID(), req.RoomID, player.IsSpectator)

	s.broadcastRoster(r)
	joined, _ := json.Marshal(player)
	s.broadcaster.BroadcastToOthers(r.RoomID, sess.GetID(), network.MsgTypePlayerJoinedChat, joined)
}

// HandleRequestReplay 同房间再来一局：回到 setup，清空所有人的分数和
// 旁观标记，上一局中途加入的人也能参与新的一局。
func (s *Service) HandleRequestReplay(sess *session.Session, data []byte) {
	var req RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("requestReplay: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("requestReplay", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	r.Status.Force(state.StatusSetup)
	r.CurrentRound = 1
	r.JudgingIndex = 0
	for _, p := range r.Players {
		p.ResetGame()
	}

	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeResetToSetup, nil)
	s.broadcastRoster(r)
}

// HandleUpdateSettings 覆盖类目和总轮数，状态强制回到 waiting
func (s *Service) HandleUpdateSettings(sess *session.Session, data []byte) {
	var req UpdateSettingsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("updateSettings: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("updateSettings", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	r.Categories = req.Categories
	r.TotalRounds = req.TotalRounds
	r.Status.Force(state.StatusWaiting)

	categories, _ := json.Marshal(r.Categories)
	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeSettingsUpdated, categories)
	s.broadcastRoster(r)
}

// HandleToggleReady 翻转准备标记
func (s *Service) HandleToggleReady(sess *session.Session, data []byte) {
	var req RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("toggleReady: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("toggleReady", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	player, exists := r.GetPlayer(sess.GetID())
	if !exists {
		logger.Log.Debugf("toggleReady: %s not in room %s, dropping", sess.GetID(), req.RoomID)
		return
	}
	player.IsReady = !player.IsReady
	s.broadcastRoster(r)
}

// HandleHostStartedGame 开始一轮：定下首字母，清掉所有人的上一轮数据。
// timer 只是转发给客户端的展示信息，服务端不计时也不会自动推进。
func (s *Service) HandleHostStartedGame(sess *session.Session, data []byte) {
	var req HostStartedGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("hostStartedGame: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("hostStartedGame", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	if err := r.Status.Transition(state.StatusPlaying); err != nil {
		logger.Log.Warnf("hostStartedGame: room %s in %s: %v", r.RoomID, r.Status.Current(), err)
		return
	}
	r.CurrentLetter = req.Letter
	r.JudgingIndex = 0
	for _, p := range r.Players {
		p.ResetRound()
	}

	logger.Log.Infof("room %s round %d started with letter %q", r.RoomID, r.CurrentRound, req.Letter)

	started, _ := json.Marshal(GameStartedEvent{
		Letter:     req.Letter,
		Categories: r.Categories,
		Timer:      req.Timer,
	})
	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeGameStarted, started)
}

// HandleTriggerPanic 转发给房间里的其他人
func (s *Service) HandleTriggerPanic(sess *session.Session, data []byte) {
	var req RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("triggerPanic: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	if _, exists := s.rooms.Get(req.RoomID); !exists {
		logger.Log.Debugf("triggerPanic: unknown room %q, dropping", req.RoomID)
		return
	}
	s.broadcaster.BroadcastToOthers(req.RoomID, sess.GetID(), network.MsgTypePanicStarted, nil)
}

// HandleSubmitAnswers 记录一名玩家的答案。只有当所有参与者都交卷时
// 才进入评审；单独一份提交本身不改变房间状态。
func (s *Service) HandleSubmitAnswers(sess *session.Session, data []byte) {
	var req SubmitAnswersRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("submitAnswers: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("submitAnswers", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	player, exists := r.GetPlayer(sess.GetID())
	if !exists {
		logger.Log.Debugf("submitAnswers: %s not in room %s, dropping", sess.GetID(), req.RoomID)
		return
	}
	player.Answers = req.Answers
	player.HasSubmitted = true

	if r.AllSubmitted() {
		r.JudgingIndex = 0
		s.startJudging(r)
	}
}

// HandleSuggestVote 注入发送者连接标识后转发给全房间
func (s *Service) HandleSuggestVote(sess *session.Session, data []byte) {
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		logger.Log.Debugf("suggestVote: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	roomID, _ := payload["roomID"].(string)
	if _, exists := s.rooms.Get(roomID); !exists {
		logger.Log.Debugf("suggestVote: unknown room %q, dropping", roomID)
		return
	}
	payload["senderId"] = sess.GetID()
	forwarded, _ := json.Marshal(payload)
	s.broadcaster.BroadcastToRoom(roomID, network.MsgTypeShowSuggestion, forwarded)
}

// HandleLockScore 评审人给被评审玩家计分，分数只增不减
func (s *Service) HandleLockScore(sess *session.Session, data []byte) {
	var req LockScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("lockScore: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("lockScore", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	if player, exists := r.GetPlayer(req.JudgedID); exists {
		player.Score += req.Points
	}

	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeScoreLocked, data)
	s.broadcastRoster(r)
}

// HandleNextJudgedPlayer 评审推进。走完全部参与者后：还有剩余轮次就
// 进入下一轮回到 waiting，否则按分数排名公布胜者（同分保持加入顺序），
// 房间留在 waiting 等待重开。
func (s *Service) HandleNextJudgedPlayer(sess *session.Session, data []byte) {
	var req RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		logger.Log.Debugf("nextJudgedPlayer: bad payload from %s: %v", sess.GetID(), err)
		return
	}
	r, ok := s.lockedRoom("nextJudgedPlayer", req.RoomID)
	if !ok {
		return
	}
	defer r.Unlock()

	participants := r.Participants()
	r.JudgingIndex++

	if r.JudgingIndex < len(participants) {
		s.startJudging(r)
		return
	}

	if r.CurrentRound < r.TotalRounds {
		r.CurrentRound++
		r.Status.Force(state.StatusWaiting)
		for _, p := range r.Players {
			p.ResetRound()
		}
		over, _ := json.Marshal(RoundOverEvent{Current: r.CurrentRound, Total: r.TotalRounds})
		s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeRoundOver, over)
		s.broadcastRoster(r)
		return
	}

	ranked := rankPlayers(r.Players)
	winners, _ := json.Marshal(ranked)
	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeShowWinnerScreen, winners)
	// 房间保持存活，等待 requestReplay
	r.Status.Force(state.StatusWaiting)

	logger.Log.Infof("room %s finished after %d round(s)", r.RoomID, r.TotalRounds)
	if s.metrics != nil {
		s.metrics.IncGamesFinished()
	}
	if s.archiver != nil {
		s.archiver.GameFinished(r.RoomID, r.Categories, r.TotalRounds, ranked)
	}
}

// HandleSendEmoji 转发给其他人，不回显给发送者
func (s *Service) HandleSendEmoji(sess *session.Session, data []byte) {
	s.relayToOthers("sendEmoji", sess, data, network.MsgTypeReceiveEmoji)
}

// HandleSendMessage 聊天转发，同样不回显
func (s *Service) HandleSendMessage(sess *session.Session, data []byte) {
	s.relayToOthers("sendMessage", sess, data, network.MsgTypeReceiveMessage)
}

func (s *Service) relayToOthers(event string, sess *session.Session, data []byte, msgID uint16) {
	var scoped RoomRequest
	if err := json.Unmarshal(data, &scoped); err != nil || scoped.RoomID == "" {
		logger.Log.Debugf("%s: bad payload from %s: %v", event, sess.GetID(), err)
		return
	}
	if _, exists := s.rooms.Get(scoped.RoomID); !exists {
		logger.Log.Debugf("%s: unknown room %q, dropping", event, scoped.RoomID)
		return
	}
	s.broadcaster.BroadcastToOthers(scoped.RoomID, sess.GetID(), msgID, data)
}

// HandleDisconnect 断线清理与修复。被移除玩家的形象回到池子；如果
// 掉线发生在 playing 且剩下的参与者都已交卷，评审会卡死在等那个人，
// 这里把索引夹回有效范围后重新拉起评审。房间空了就销毁。
func (s *Service) HandleDisconnect(sess *session.Session) {
	r, found := s.rooms.FindByPlayer(sess.GetID())
	if !found {
		return
	}

	r.Lock()
	defer r.Unlock()

	dropped, ok := r.RemovePlayer(sess.GetID())
	if !ok {
		return
	}
	r.ReleaseAvatar(room.Avatar{Img: dropped.Avatar, Color: dropped.Color})

	logger.Log.Infof("player %s (%s) left room %s", dropped.Name, dropped.SocketID, r.RoomID)

	s.broadcastRoster(r)
	left, _ := json.Marshal(dropped)
	s.broadcaster.BroadcastToOthers(r.RoomID, sess.GetID(), network.MsgTypePlayerLeftChat, left)

	participants := r.Participants()
	if len(participants) > 0 && r.Status.Is(state.StatusPlaying) && r.AllSubmitted() {
		if r.JudgingIndex >= len(participants) {
			r.JudgingIndex = 0
		}
		s.startJudging(r)
	}

	if r.IsEmpty() {
		s.rooms.Remove(r.RoomID)
		logger.Log.Infof("room %s is empty, destroyed", r.RoomID)
	}
}
