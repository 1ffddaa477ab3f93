package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	models "wordrush/internal/models"
)

// Rand is the injected randomness source, satisfied by *math/rand.Rand.
type Rand interface {
	Intn(n int) int
}

// lockedRand guards a *rand.Rand so matches in different rooms can draw
// concurrently.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

var modes = []string{
	constants.ModeSnake,
	constants.ModeLadder,
	constants.ModeCategory,
	constants.ModeStop,
}

// buildPrompt selects the challenge mode for the next turn uniformly at
// random and derives its metadata from the base word. The base word must be
// non-empty and the category table non-empty; the engine guarantees both.
func buildPrompt(rng Rand, cats *dictionary.CategoryTable, base, playerName string) (string, string, models.PromptMeta) {
	mode := modes[rng.Intn(len(modes))]

	switch mode {
	case constants.ModeSnake:
		start := string(base[len(base)-1])
		text := fmt.Sprintf("%s, your word must start with '%s'", playerName, strings.ToUpper(start))
		return text, mode, models.PromptMeta{StartLetter: start}
	case constants.ModeLadder:
		text := fmt.Sprintf("%s, change '%s' by exactly one letter", playerName, strings.ToUpper(base))
		return text, mode, models.PromptMeta{Base: base}
	case constants.ModeCategory:
		names := cats.Names()
		cat := names[rng.Intn(len(names))]
		text := fmt.Sprintf("%s, give a word in category '%s'", playerName, strings.ToUpper(cat))
		return text, mode, models.PromptMeta{Category: cat}
	default:
		forbidden := string(constants.Alphabet[rng.Intn(len(constants.Alphabet))])
		text := fmt.Sprintf("%s, give a word without '%s'", playerName, strings.ToUpper(forbidden))
		return text, mode, models.PromptMeta{Forbidden: forbidden}
	}
}
