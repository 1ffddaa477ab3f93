package game

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/samber/lo"
	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	models "wordrush/internal/models"
	util "wordrush/internal/util"
)

// Notifier delivers room-scoped announcements to whatever chat transport
// is attached.
type Notifier interface {
	Announce(roomID, text string)
}

// Vocabulary is the slice of the word store the engine needs: seed words
// for the first prompt and moderator authorization for stop/limit commands.
type Vocabulary interface {
	RandomWord() (string, error)
	IsPrivileged(userID string) bool
}

// Engine drives every match: lobby formation, turn scheduling, answer
// judging, elimination, and end-of-match resolution. One match exists per
// room; all operations against a match run under its mutex.
type Engine struct {
	cfg      models.Config
	vocab    Vocabulary
	cats     *dictionary.CategoryTable
	notifier Notifier
	registry *Registry

	rng       Rand
	now       func() time.Time
	afterFunc func(d time.Duration, f func()) *time.Timer
}

func NewEngine(cfg models.Config, vocab Vocabulary, cats *dictionary.CategoryTable, notifier Notifier) *Engine {
	if cfg.LobbyWindow <= 0 {
		cfg.LobbyWindow = constants.LobbyWindow
	}
	if cfg.ReminderLead <= 0 {
		cfg.ReminderLead = constants.ReminderLead
	}
	if cfg.PointsPerWord <= 0 {
		cfg.PointsPerWord = constants.PointsPerWord
	}
	if cfg.MaxPlayers < constants.MaxPlayersFloor || cfg.MaxPlayers > constants.MaxPlayersCeil {
		cfg.MaxPlayers = constants.DefaultMaxPlayers
	}
	return &Engine{
		cfg:      cfg,
		vocab:    vocab,
		cats:     cats,
		notifier: notifier,
		registry: NewRegistry(),
		rng:      &lockedRand{r: rand.New(rand.NewSource(time.Now().UnixNano()))},
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) *time.Timer {
			return time.AfterFunc(d, f)
		},
	}
}

func (e *Engine) ActiveMatches() int {
	return e.registry.ActiveCount()
}

// CreateGame opens a lobby in the room and arms the auto-start timer.
// Fails if the room already has an active match.
func (e *Engine) CreateGame(roomID string) error {
	m := newMatch(roomID, e.cfg.MaxPlayers)
	if !e.registry.PutIfAbsent(roomID, m) {
		return ErrAlreadyActive
	}

	m.mu.Lock()
	m.lobbyTimer = e.afterFunc(e.cfg.LobbyWindow, func() { e.closeLobbyAndStart(roomID) })
	m.mu.Unlock()

	util.LogInfo("Lobby opened in room %s", roomID)
	e.notifier.Announce(roomID, fmt.Sprintf("Lobby open! Join within %d seconds", int(e.cfg.LobbyWindow.Seconds())))
	return nil
}

// Join adds a player to an open lobby. A closed lobby or a duplicate join
// is a silent no-op; a full lobby is announced.
func (e *Engine) Join(roomID, playerID, displayName string) error {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return ErrNoActiveGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != models.PhaseLobbyOpen || m.inLobby(playerID) {
		return nil
	}
	if len(m.lobby) >= m.maxPlayers {
		e.notifier.Announce(roomID, "Lobby is full")
		return nil
	}
	if displayName == "" {
		displayName = playerID
	}
	m.lobby = append(m.lobby, models.PlayerRef{ID: playerID, Name: displayName})
	m.names[playerID] = displayName
	e.notifier.Announce(roomID, fmt.Sprintf("%s joined (%d/%d)", displayName, len(m.lobby), m.maxPlayers))
	return nil
}

// closeLobbyAndStart fires once per match when the lobby window elapses.
// Below the player minimum the match is cancelled and destroyed; otherwise
// the roster is snapshot and the first turn begins.
func (e *Engine) closeLobbyAndStart(roomID string) {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != models.PhaseLobbyOpen {
		return
	}
	m.lobbyTimer = nil

	if len(m.lobby) < constants.MinPlayersToStart {
		m.phase = models.PhaseEnded
		m.cancelTimers()
		e.registry.Remove(roomID)
		util.LogInfo("Match in room %s cancelled: %d player(s) joined", roomID, len(m.lobby))
		e.notifier.Announce(roomID, "Not enough players, game cancelled")
		return
	}

	m.players = lo.Map(m.lobby, func(p models.PlayerRef, _ int) string { return p.ID })
	for _, id := range m.players {
		m.alive[id] = struct{}{}
		m.points[id] = 0
		m.streaks[id] = 0
	}
	m.turnIndex = 0
	m.phase = models.PhaseRunning

	util.LogInfo("Match started in room %s with %d players", roomID, len(m.players))
	e.notifier.Announce(roomID, fmt.Sprintf("Game on! %d players", len(m.players)))
	e.beginTurnLocked(m)
}

// beginTurnLocked recomputes constraints, picks the next alive player in
// join order, generates the prompt, and arms the reminder timer. Caller
// holds m.mu.
func (e *Engine) beginTurnLocked(m *Match) {
	m.cancelReminder()
	m.constraints = ConstraintsFor(m.wordCount)

	if len(m.alive) == 0 {
		e.endLocked(m)
		return
	}

	found := false
	for i := 0; i < len(m.players); i++ {
		idx := (m.turnIndex + i) % len(m.players)
		if _, ok := m.alive[m.players[idx]]; ok {
			m.turnIndex = idx
			found = true
			break
		}
	}
	if !found {
		// Guards the wraparound scan against an inconsistent alive set.
		e.endLocked(m)
		return
	}

	playerID := m.players[m.turnIndex]
	if m.lastWord == "" {
		seed, err := e.vocab.RandomWord()
		if err != nil {
			util.LogWarn("No seed word available for room %s: %v", m.roomID, err)
			e.endLocked(m)
			return
		}
		m.lastWord = seed
	}

	text, mode, meta := buildPrompt(e.rng, e.cats, m.lastWord, m.names[playerID])
	m.turnSeq++
	seq := m.turnSeq
	m.current = &models.Turn{
		PlayerID: playerID,
		Mode:     mode,
		Meta:     meta,
		Deadline: e.now().Add(m.constraints.TimeLimit),
		Seq:      seq,
	}

	lead := m.constraints.TimeLimit - e.cfg.ReminderLead
	if lead < 0 {
		lead = 0
	}
	roomID := m.roomID
	m.reminderTimer = e.afterFunc(lead, func() { e.remind(roomID, seq) })
	e.notifier.Announce(roomID, text)
}

// remind warns the active player near the deadline. It re-validates turn
// identity and deadline under the match lock: a reminder armed for a turn
// that has since been superseded silently no-ops.
func (e *Engine) remind(roomID string, seq uint64) {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != models.PhaseRunning || m.current == nil || m.current.Seq != seq {
		return
	}
	remaining := m.current.Deadline.Sub(e.now())
	if remaining <= 0 {
		return
	}
	seconds := int(remaining.Round(time.Second).Seconds())
	e.notifier.Announce(roomID, fmt.Sprintf("%s, %d seconds left!", m.names[m.current.PlayerID], seconds))
}

// SubmitAnswer judges an answer from the active player. Lateness is decided
// by comparing the submission timestamp to the stored deadline, not by
// timer ordering. Answers from anyone but the active player, or with no
// turn in flight, are ignored.
func (e *Engine) SubmitAnswer(roomID, playerID, text string, submittedAt time.Time) error {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return ErrNoActiveGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != models.PhaseRunning || m.current == nil || playerID != m.current.PlayerID {
		return nil
	}

	if submittedAt.After(m.current.Deadline) {
		e.eliminateLocked(m, playerID, "ran out of time")
		return nil
	}

	word, reason := ValidateAnswer(text, m.current.Mode, m.current.Meta, m.constraints, m.usedWords, e.cats)
	if reason != "" {
		// The player keeps the turn and may resubmit before the deadline.
		e.notifier.Announce(roomID, RejectMessage(reason, m.current.Meta, m.constraints))
		return nil
	}

	m.points[playerID] += e.cfg.PointsPerWord
	m.streaks[playerID]++
	m.wordCount++
	m.lastWord = word
	m.usedWords[word] = struct{}{}
	e.notifier.Announce(roomID, fmt.Sprintf("Accepted! +%d points", e.cfg.PointsPerWord))

	m.turnIndex = (m.turnIndex + 1) % len(m.players)
	e.beginTurnLocked(m)
	return nil
}

// eliminateLocked removes the player from the alive set and either ends
// the match or hands the turn to the next survivor. Caller holds m.mu.
func (e *Engine) eliminateLocked(m *Match, playerID, cause string) {
	delete(m.alive, playerID)
	m.streaks[playerID] = 0
	m.current = nil
	m.cancelReminder()
	e.notifier.Announce(m.roomID, fmt.Sprintf("%s eliminated (%s)", m.names[playerID], cause))

	if len(m.alive) <= 1 {
		e.endLocked(m)
		return
	}
	m.turnIndex = (m.turnIndex + 1) % len(m.players)
	e.beginTurnLocked(m)
}

// ForceStop ends the match immediately. Only the owner or a privileged
// user may stop a running game.
func (e *Engine) ForceStop(roomID, callerID string) error {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return ErrNoActiveGame
	}
	if !e.vocab.IsPrivileged(callerID) {
		return ErrNotAuthorized
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == models.PhaseEnded {
		return nil
	}
	e.notifier.Announce(roomID, "Game stopped by a moderator")
	e.endLocked(m)
	return nil
}

// EndMatch is idempotent: ending an already destroyed match is a no-op.
func (e *Engine) EndMatch(roomID string) {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.endLocked(m)
}

// endLocked transitions the match to Ended exactly once, resolves the
// winner, and removes the match from the registry. Caller holds m.mu.
func (e *Engine) endLocked(m *Match) {
	if m.phase == models.PhaseEnded {
		return
	}
	m.phase = models.PhaseEnded
	m.cancelTimers()
	m.current = nil

	winner := ""
	if len(m.alive) == 1 {
		for id := range m.alive {
			winner = id
		}
	} else if len(m.points) > 0 {
		best := -1
		for _, id := range m.players {
			if m.points[id] > best {
				best = m.points[id]
				winner = id
			}
		}
	}

	if winner != "" {
		e.notifier.Announce(m.roomID, fmt.Sprintf("Winner: %s with %d points", m.names[winner], m.points[winner]))
	} else {
		e.notifier.Announce(m.roomID, "Game over. No survivors")
	}
	util.LogInfo("Match ended in room %s, winner=%q", m.roomID, winner)
	e.registry.Remove(m.roomID)
}

// SetMaxPlayers adjusts the lobby capacity before the match starts.
func (e *Engine) SetMaxPlayers(roomID, callerID string, n int) error {
	if n < constants.MaxPlayersFloor || n > constants.MaxPlayersCeil {
		return ErrInvalidMaxPlayers
	}
	m, ok := e.registry.Get(roomID)
	if !ok {
		return ErrNoActiveGame
	}
	if !e.vocab.IsPrivileged(callerID) {
		return ErrNotAuthorized
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != models.PhaseLobbyOpen {
		return ErrLobbyAlreadyClosed
	}
	m.maxPlayers = n
	e.notifier.Announce(roomID, fmt.Sprintf("Lobby size set to %d", n))
	return nil
}

// Score returns one player's standing in the room's match.
func (e *Engine) Score(roomID, playerID string) (models.Standing, error) {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return models.Standing{}, ErrNoActiveGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.points[playerID]; !ok {
		return models.Standing{}, ErrPlayerNotInMatch
	}
	_, alive := m.alive[playerID]
	return models.Standing{
		PlayerID: playerID,
		Name:     m.names[playerID],
		Points:   m.points[playerID],
		Streak:   m.streaks[playerID],
		Alive:    alive,
	}, nil
}

// Leaderboard returns all standings ordered by points, join order breaking
// ties.
func (e *Engine) Leaderboard(roomID string) ([]models.Standing, error) {
	m, ok := e.registry.Get(roomID)
	if !ok {
		return nil, ErrNoActiveGame
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	standings := lo.Map(m.players, func(id string, _ int) models.Standing {
		_, alive := m.alive[id]
		return models.Standing{
			PlayerID: id,
			Name:     m.names[id],
			Points:   m.points[id],
			Streak:   m.streaks[id],
			Alive:    alive,
		}
	})
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings, nil
}
