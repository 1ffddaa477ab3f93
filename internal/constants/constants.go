package constants

import "time"

const (
	DefaultMaxPlayers = 15
	MinPlayersToStart = 2
	MaxPlayersFloor   = 2
	MaxPlayersCeil    = 50
	PointsPerWord     = 10
)

const (
	LobbyWindow  = 30 * time.Second
	ReminderLead = 5 * time.Second
)

const (
	ModeSnake    = "snake"
	ModeLadder   = "ladder"
	ModeCategory = "category"
	ModeStop     = "stop"
)

const (
	RejectEmptyWord              = "empty_word"
	RejectNotEnglish             = "not_english"
	RejectLengthOutOfRange       = "length_out_of_range"
	RejectAlreadyUsed            = "already_used"
	RejectWrongStart             = "wrong_start"
	RejectLengthMismatch         = "length_mismatch"
	RejectNotOneLetterChange     = "not_one_letter_change"
	RejectNotInCategory          = "not_in_category"
	RejectForbiddenLetterPresent = "forbidden_letter_present"
)

const (
	RouteHealthz     = "/healthz"
	RouteCreateGame  = "/rooms/:room/game"
	RouteJoin        = "/rooms/:room/join"
	RouteAnswer      = "/rooms/:room/answer"
	RouteStop        = "/rooms/:room/stop"
	RouteMaxPlayers  = "/rooms/:room/max-players"
	RouteScore       = "/rooms/:room/scores/:player"
	RouteLeaderboard = "/rooms/:room/leaderboard"
	RouteEvents      = "/rooms/:room/events"
	RouteSocket      = "/rooms/:room/ws"
	RouteWords       = "/dictionary/words"
	RouteWord        = "/dictionary/words/:word"
	RoutePrivileged  = "/dictionary/privileged"
	RoutePrivUser    = "/dictionary/privileged/:id"
)

const Alphabet = "abcdefghijklmnopqrstuvwxyz"

type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)
