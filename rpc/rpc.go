package rpc

import (
	"errors"
	"net"
	"net/rpc"

	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/models"
	"github.com/wfunc/wordparty/room"
	"github.com/wfunc/wordparty/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService 运维查询接口：在线房间概览和历史战绩
type AdminService struct {
	rooms   *room.Manager
	archive *services.ArchiveService
}

// NewAdminService creates the ops RPC surface. archive may be nil when
// persistence is disabled.
func NewAdminService(rooms *room.Manager, archive *services.ArchiveService) *AdminService {
	return &AdminService{rooms: rooms, archive: archive}
}

type ListRoomsArgs struct{}

type ListRoomsReply struct {
	Rooms []models.RoomSummary
}

func (a *AdminService) ListRooms(args *ListRoomsArgs, reply *ListRoomsReply) error {
	for _, r := range a.rooms.Snapshot() {
		r.Lock()
		spectators := 0
		for _, p := range r.Players {
			if p.IsSpectator {
				spectators++
			}
		}
		reply.Rooms = append(reply.Rooms, models.RoomSummary{
			RoomID:       r.RoomID,
			Status:       string(r.Status.Current()),
			Players:      len(r.Players),
			Spectators:   spectators,
			CurrentRound: r.CurrentRound,
			TotalRounds:  r.TotalRounds,
			CreatedAt:    r.CreatedAt,
		})
		r.Unlock()
	}
	return nil
}

type LeaderboardArgs struct {
	Limit int
}

type LeaderboardReply struct {
	Entries []models.LeaderboardEntry
}

func (a *AdminService) Leaderboard(args *LeaderboardArgs, reply *LeaderboardReply) error {
	if a.archive == nil {
		return errors.New("persistence disabled")
	}
	entries, err := a.archive.Leaderboard(args.Limit)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}
