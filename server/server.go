package server

import (
	"net/http"
	"net/rpc"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/wordparty/broadcast"
	"github.com/wfunc/wordparty/config"
	"github.com/wfunc/wordparty/game"
	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/monitor"
	"github.com/wfunc/wordparty/network"
	"github.com/wfunc/wordparty/persistence"
	wordparty_rpc "github.com/wfunc/wordparty/rpc"
	"github.com/wfunc/wordparty/room"
	"github.com/wfunc/wordparty/services"
	"github.com/wfunc/wordparty/session"
	"github.com/wfunc/wordparty/timer"
)

type GameServer struct {
	cfg            *config.Config
	engine         *gin.Engine
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	gameService    *game.Service
	broadcaster    broadcast.Broadcaster
	monitor        *monitor.Monitor
	timers         *timer.Manager
	rpcServer      *wordparty_rpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		roomManager:    room.NewRoomManager(),
		sessionManager: session.NewManager(),
		monitor:        monitor.NewMonitor("wordparty"),
		timers:         timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // 允许所有跨域请求
			},
		},
	}

	// 初始化广播器与游戏逻辑
	s.broadcaster = broadcast.NewRoomBroadcaster(s.sessionManager)
	s.gameService = game.NewService(s.roomManager, s.broadcaster,
		cfg.Game.DefaultCategories, cfg.Game.DefaultTotalRounds)
	s.gameService.SetMetrics(s.monitor)

	var archive *services.ArchiveService
	if store != nil {
		archive = services.NewArchiveService(store)
		s.gameService.SetArchiver(archive)
	}

	// 初始化RPC服务器
	rpcServer, err := wordparty_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	rpc.Register(wordparty_rpc.NewAdminService(s.roomManager, archive))

	s.engine = s.buildRouter()
	return s
}

func (s *GameServer) buildRouter() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	origins := s.cfg.Server.AllowOrigins
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	engine.Use(cors.New(corsConfig))

	engine.GET("/ws", s.handleWebSocket)
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"rooms":   s.roomManager.Count(),
			"players": s.sessionManager.Count(),
		})
	})
	return engine
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.monitor.StartServer(s.cfg.Server.MetricsAddress)
	s.startSessionSweep()

	addr := s.cfg.Server.HTTPAddress()
	logger.Log.Infof("Game server listening on %s", addr)
	return s.engine.Run(addr)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

// startSessionSweep 周期性关闭长时间没有心跳的连接。被关掉的连接走
// 正常的断线路径，游戏状态由断线修复逻辑接管。
func (s *GameServer) startSessionSweep() {
	interval := time.Duration(s.cfg.Server.SweepInterval) * time.Second
	timeout := time.Duration(s.cfg.Server.SessionTimeout) * time.Second
	if interval <= 0 || timeout <= 0 {
		return
	}

	s.timers.AddTimer(interval, interval, func() {
		for _, stale := range s.sessionManager.StaleSessions(timeout) {
			logger.Log.Warnf("Closing stale session %s (idle since %v)", stale.GetID(), stale.IdleSince())
			stale.Close()
		}
	})
}

func (s *GameServer) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.monitor.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.gameService.HandleDisconnect(sess)
		s.monitor.DecOnlinePlayers()
		s.monitor.SetActiveRooms(s.roomManager.Count())
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			sess.Touch()
			s.monitor.IncMessagesReceived()

			start := time.Now()
			s.handlePacket(sess, packet)
			s.monitor.ObserveMessageLatency(time.Since(start))
			s.monitor.SetActiveRooms(s.roomManager.Count())
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		// Touch 已经在读循环里做了
	case network.MsgTypeJoinRoom:
		s.gameService.HandleJoinRoom(sess, packet.Data)
	case network.MsgTypeRequestReplay:
		s.gameService.HandleRequestReplay(sess, packet.Data)
	case network.MsgTypeUpdateSettings:
		s.gameService.HandleUpdateSettings(sess, packet.Data)
	case network.MsgTypeToggleReady:
		s.gameService.HandleToggleReady(sess, packet.Data)
	case network.MsgTypeHostStartedGame:
		s.gameService.HandleHostStartedGame(sess, packet.Data)
	case network.MsgTypeTriggerPanic:
		s.gameService.HandleTriggerPanic(sess, packet.Data)
	case network.MsgTypeSubmitAnswers:
		s.gameService.HandleSubmitAnswers(sess, packet.Data)
	case network.MsgTypeSuggestVote:
		s.gameService.HandleSuggestVote(sess, packet.Data)
	case network.MsgTypeLockScore:
		s.gameService.HandleLockScore(sess, packet.Data)
	case network.MsgTypeNextJudgedPlayer:
		s.gameService.HandleNextJudgedPlayer(sess, packet.Data)
	case network.MsgTypeSendEmoji:
		s.gameService.HandleSendEmoji(sess, packet.Data)
	case network.MsgTypeSendMessage:
		s.gameService.HandleSendMessage(sess, packet.Data)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}
