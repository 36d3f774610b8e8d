package network

// 客户端 -> 服务端
const (
	MsgTypeHeartbeat        = 1
	MsgTypeJoinRoom         = 101
	MsgTypeRequestReplay    = 102
	MsgTypeUpdateSettings   = 103
	MsgTypeToggleReady      = 104
	MsgTypeHostStartedGame  = 105
	MsgTypeTriggerPanic     = 106
	MsgTypeSubmitAnswers    = 107
	MsgTypeSuggestVote      = 108
	MsgTypeLockScore        = 109
	MsgTypeNextJudgedPlayer = 110
	MsgTypeSendEmoji        = 111
	MsgTypeSendMessage      = 112
)

// 服务端 -> 客户端
const (
	MsgTypeUpdatePlayerList = 301
	MsgTypePlayerJoinedChat = 302
	MsgTypePlayerLeftChat   = 303
	MsgTypeStartVoting      = 304
	MsgTypeResetToSetup     = 305
	MsgTypeSettingsUpdated  = 306
	MsgTypeGameStarted      = 307
	MsgTypePanicStarted     = 308
	MsgTypeShowSuggestion   = 309
	MsgTypeScoreLocked      = 310
	MsgTypeRoundOver        = 311
	MsgTypeShowWinnerScreen = 312
	MsgTypeReceiveEmoji     = 313
	MsgTypeReceiveMessage   = 314
)
