package game

import (
	"sync"
	"time"

	models "wordrush/internal/models"
)

// Match is the authoritative per-room game object. All reads and writes go
// through mu, which serializes inbound events, the lobby timer, and the
// reminder timer for one room.
type Match struct {
	mu sync.Mutex

	roomID     string
	phase      models.Phase
	lobby      []models.PlayerRef
	names      map[string]string
	maxPlayers int

	players   []string
	alive     map[string]struct{}
	points    map[string]int
	streaks   map[string]int
	turnIndex int

	wordCount   int
	usedWords   map[string]struct{}
	lastWord    string
	constraints models.Constraints

	current *models.Turn
	turnSeq uint64

	lobbyTimer    *time.Timer
	reminderTimer *time.Timer
}

func newMatch(roomID string, maxPlayers int) *Match {
	return &Match{
		roomID:      roomID,
		phase:       models.PhaseLobbyOpen,
		names:       make(map[string]string),
		maxPlayers:  maxPlayers,
		alive:       make(map[string]struct{}),
		points:      make(map[string]int),
		streaks:     make(map[string]int),
		usedWords:   make(map[string]struct{}),
		constraints: ConstraintsFor(0),
	}
}

func (m *Match) inLobby(playerID string) bool {
	for _, p := range m.lobby {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

func (m *Match) cancelReminder() {
	if m.reminderTimer != nil {
		m.reminderTimer.Stop()
		m.reminderTimer = nil
	}
}

func (m *Match) cancelTimers() {
	m.cancelReminder()
	if m.lobbyTimer != nil {
		m.lobbyTimer.Stop()
		m.lobbyTimer = nil
	}
}
