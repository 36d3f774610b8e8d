package room

// Player 房间内的一名玩家。SocketID 是其连接标识，重连后会变化。
// JSON 字段名是客户端的线上契约，不要改。
type Player struct {
	SocketID     string            `json:"socketId"`
	Name         string            `json:"name"`
	Avatar       string            `json:"avatar"`
	Color        string            `json:"color"`
	IsHost       bool              `json:"isHost"`
	IsSpectator  bool              `json:"isSpectator"`
	Score        int               `json:"score"`
	IsReady      bool              `json:"isReady"`
	Answers      map[string]string `json:"answers"`
	HasSubmitted bool              `json:"hasSubmitted"`
}

func NewPlayer(socketID, name string, isHost bool, avatar Avatar, isSpectator bool) *Player {
	return &Player{
		SocketID:    socketID,
		Name:        name,
		Avatar:      avatar.Img,
		Color:       avatar.Color,
		IsHost:      isHost,
		IsSpectator: isSpectator,
		Answers:     make(map[string]string),
	}
}

// ResetRound clears the per-round fields (answers, submission and ready
// flags). Score and spectator status are untouched.
func (p *Player) ResetRound() {
	p.Answers = make(map[string]string)
	p.HasSubmitted = false
	p.IsReady = false
}

// ResetGame clears everything a replay resets, including score and
// spectator status.
func (p *Player) ResetGame() {
	p.ResetRound()
	p.Score = 0
	p.IsSpectator = false
}
