package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/wfunc/wordparty/network"
)

var eventNames = map[uint16]string{
	network.MsgTypeUpdatePlayerList: "updatePlayerList",
	network.MsgTypePlayerJoinedChat: "playerJoinedChat",
	network.MsgTypePlayerLeftChat:   "playerLeftChat",
	network.MsgTypeStartVoting:      "startVoting",
	network.MsgTypeResetToSetup:     "resetToSetup",
	network.MsgTypeSettingsUpdated:  "settingsUpdated",
	network.MsgTypeGameStarted:      "gameStarted",
	network.MsgTypePanicStarted:     "panicStarted",
	network.MsgTypeShowSuggestion:   "showSuggestion",
	network.MsgTypeScoreLocked:      "scoreLocked",
	network.MsgTypeRoundOver:        "roundOver",
	network.MsgTypeShowWinnerScreen: "showWinnerScreen",
	network.MsgTypeReceiveEmoji:     "receiveEmoji",
	network.MsgTypeReceiveMessage:   "receiveMessage",
}

func send(c *websocket.Conn, msgID uint16, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.BinaryMessage, network.Encode(msgID, data))
}

func main() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	addr := "localhost:3000"
	if len(os.Args) > 1 {
		addr = os.Args[1]
	}
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, raw, err := c.ReadMessage()
			if err != nil {
				log.Printf("Read error: %v", err)
				return
			}
			packet, err := network.Decode(raw)
			if err != nil {
				log.Printf("Bad packet: %v", err)
				continue
			}
			name := eventNames[packet.MsgID]
			if name == "" {
				name = fmt.Sprintf("msg-%d", packet.MsgID)
			}
			log.Printf("<- %s %s", name, string(packet.Data))
		}
	}()

	var roomID string
	fmt.Println(`commands:
  join <room> <name> [host]
  ready | replay | panic | next
  settings <rounds> <cat1,cat2,...>
  start <letter> <timerSeconds>
  submit <cat>=<answer> [...]
  lock <judgedId> <points>
  chat <text>`)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case <-interrupt:
			return
		case <-done:
			return
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "join":
			if len(fields) < 3 {
				fmt.Println("usage: join <room> <name> [host]")
				continue
			}
			roomID = fields[1]
			err = send(c, network.MsgTypeJoinRoom, map[string]interface{}{
				"roomID": roomID,
				"name":   fields[2],
				"isHost": len(fields) > 3 && fields[3] == "host",
			})
		case "ready":
			err = send(c, network.MsgTypeToggleReady, map[string]string{"roomID": roomID})
		case "replay":
			err = send(c, network.MsgTypeRequestReplay, map[string]string{"roomID": roomID})
		case "panic":
			err = send(c, network.MsgTypeTriggerPanic, map[string]string{"roomID": roomID})
		case "next":
			err = send(c, network.MsgTypeNextJudgedPlayer, map[string]string{"roomID": roomID})
		case "settings":
			if len(fields) < 3 {
				fmt.Println("usage: settings <rounds> <cat1,cat2,...>")
				continue
			}
			rounds, _ := strconv.Atoi(fields[1])
			err = send(c, network.MsgTypeUpdateSettings, map[string]interface{}{
				"roomID":      roomID,
				"totalRounds": rounds,
				"categories":  strings.Split(fields[2], ","),
			})
		case "start":
			if len(fields) < 3 {
				fmt.Println("usage: start <letter> <timerSeconds>")
				continue
			}
			timer, _ := strconv.Atoi(fields[2])
			err = send(c, network.MsgTypeHostStartedGame, map[string]interface{}{
				"roomID": roomID,
				"letter": fields[1],
				"timer":  timer,
			})
		case "submit":
			answers := make(map[string]string)
			for _, pair := range fields[1:] {
				if k, v, ok := strings.Cut(pair, "="); ok {
					answers[k] = v
				}
			}
			err = send(c, network.MsgTypeSubmitAnswers, map[string]interface{}{
				"roomID":  roomID,
				"answers": answers,
			})
		case "lock":
			if len(fields) < 3 {
				fmt.Println("usage: lock <judgedId> <points>")
				continue
			}
			points, _ := strconv.Atoi(fields[2])
			err = send(c, network.MsgTypeLockScore, map[string]interface{}{
				"roomID":   roomID,
				"judgedId": fields[1],
				"points":   points,
			})
		case "chat":
			err = send(c, network.MsgTypeSendMessage, map[string]string{
				"roomID":  roomID,
				"message": strings.Join(fields[1:], " "),
			})
		default:
			fmt.Println("unknown command:", fields[0])
			continue
		}
		if err != nil {
			log.Printf("Send failed: %v", err)
			return
		}
	}
}
