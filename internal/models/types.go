package models

import "time"

type Phase int

const (
	PhaseLobbyOpen Phase = iota
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseLobbyOpen:
		return "lobby_open"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

type PlayerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Constraints is the active difficulty tuple, scaled by the cumulative
// accepted-word count of the match.
type Constraints struct {
	MinLen    int           `json:"minLen"`
	MaxLen    int           `json:"maxLen"`
	TimeLimit time.Duration `json:"timeLimit"`
}

// PromptMeta carries the per-mode challenge metadata. Only the field for
// the active mode is populated.
type PromptMeta struct {
	StartLetter string `json:"startLetter,omitempty"`
	Base        string `json:"base,omitempty"`
	Category    string `json:"category,omitempty"`
	Forbidden   string `json:"forbidden,omitempty"`
}

// Turn is the currently active turn of a match. Seq distinguishes it from
// earlier turns so a stale reminder can detect it has been superseded.
type Turn struct {
	PlayerID string
	Mode     string
	Meta     PromptMeta
	Deadline time.Time
	Seq      uint64
}

type Standing struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Streak   int    `json:"streak"`
	Alive    bool   `json:"alive"`
}

type Config struct {
	OwnerID       string
	LobbyWindow   time.Duration
	ReminderLead  time.Duration
	PointsPerWord int
	MaxPlayers    int
}
