package game

import (
	"encoding/json"
	"sort"

	"github.com/wfunc/wordparty/logger"
	"github.com/wfunc/wordparty/network"
	"github.com/wfunc/wordparty/room"
)

// startJudging 宣布当前被评审的玩家和评审人。Caller must hold the room lock.
//
// 评审人固定是参与者里的房主；当房主正好就是被评审者且参与者不止一人时，
// 换成第一个非房主的参与者，保证没人给自己打分（单人房除外）。
func (s *Service) startJudging(r *room.Room) {
	participants := r.Participants()
	if len(participants) == 0 {
		return
	}
	if r.JudgingIndex < 0 || r.JudgingIndex >= len(participants) {
		// 调用方有义务先把索引夹回有效范围；走到这里说明上游漏了，
		// 按约定不发任何公告。
		logger.Log.Warnf("room %s: judging index %d out of range (%d participants), dropping announcement",
			r.RoomID, r.JudgingIndex, len(participants))
		return
	}

	judged := participants[r.JudgingIndex]

	var judge *room.Player
	for _, p := range participants {
		if p.IsHost {
			judge = p
			break
		}
	}
	if judge != nil && judge.SocketID == judged.SocketID && len(participants) > 1 {
		for _, p := range participants {
			if !p.IsHost {
				judge = p
				break
			}
		}
	}

	judgeID := participants[0].SocketID
	if judge != nil {
		judgeID = judge.SocketID
	}

	data, _ := json.Marshal(StartVotingEvent{
		JudgedPlayer: judged,
		JudgeID:      judgeID,
		Categories:   r.Categories,
	})
	s.broadcaster.BroadcastToRoom(r.RoomID, network.MsgTypeStartVoting, data)
}

// rankPlayers 按分数降序排列全体玩家，同分保持加入顺序
func rankPlayers(players []*room.Player) []*room.Player {
	ranked := make([]*room.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
