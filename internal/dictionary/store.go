package dictionary

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
	util "wordrush/internal/util"
)

var (
	ErrNotEnglish        = errors.New("only English words allowed")
	ErrAlreadyExists     = errors.New("word already exists")
	ErrNotFound          = errors.New("word not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrAlreadyPrivileged = errors.New("already privileged")
	ErrNotPrivileged     = errors.New("not privileged")
	ErrEmptyDictionary   = errors.New("dictionary is empty")
)

var englishPattern = regexp.MustCompile(`^[a-zA-Z]+$`)

func IsEnglish(word string) bool {
	return englishPattern.MatchString(word)
}

// Store holds the accepted vocabulary and the privileged-user set. Both are
// loaded once at startup and flushed back to disk on every mutation. The
// durable write happens before the in-memory commit, so a failed flush
// leaves the store unchanged.
type Store struct {
	mu        sync.RWMutex
	wordsFile string
	sudoFile  string
	ownerID   string

	words      map[string]struct{}
	wordList   []string
	privileged map[string]struct{}
}

func Load(wordsFile, sudoFile, ownerID string) (*Store, error) {
	util.LogInfo("Loading words from %s", wordsFile)

	data, err := os.ReadFile(wordsFile)
	if err != nil {
		return nil, err
	}

	words := make(map[string]struct{})
	for _, line := range strings.Split(string(data), "\n") {
		w := strings.ToLower(strings.TrimSpace(line))
		if w == "" {
			continue
		}
		if !IsEnglish(w) {
			util.LogWarn("Skipping word %q: not alphabetic", w)
			continue
		}
		words[w] = struct{}{}
	}

	privileged := make(map[string]struct{})
	if sudoData, err := os.ReadFile(sudoFile); err == nil {
		var ids []string
		if err := json.Unmarshal(sudoData, &ids); err != nil {
			return nil, err
		}
		for _, id := range ids {
			privileged[id] = struct{}{}
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	s := &Store{
		wordsFile:  wordsFile,
		sudoFile:   sudoFile,
		ownerID:    ownerID,
		words:      words,
		wordList:   sortedKeys(words),
		privileged: privileged,
	}
	util.LogInfo("Successfully loaded %d words, %d privileged users", len(words), len(privileged))
	return s, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := lo.Keys(set)
	sort.Strings(keys)
	return keys
}

func (s *Store) Contains(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

func (s *Store) Owner() string {
	return s.ownerID
}

// IsPrivileged reports whether the user may perform moderator actions.
// The owner is always privileged.
func (s *Store) IsPrivileged(userID string) bool {
	if userID == s.ownerID {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.privileged[userID]
	return ok
}

func (s *Store) ListPrivileged() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.privileged)
}

// RandomWord picks a uniformly random word from the vocabulary.
func (s *Store) RandomWord() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.wordList) == 0 {
		return "", ErrEmptyDictionary
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s.wordList))))
	if err != nil {
		util.LogWarn("Error generating random number: %v, using fallback", err)
		return s.wordList[0], nil
	}
	return s.wordList[n.Int64()], nil
}

func (s *Store) AddWord(word string) error {
	word = strings.ToLower(strings.TrimSpace(word))
	if !IsEnglish(word) {
		return ErrNotEnglish
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word]; ok {
		return ErrAlreadyExists
	}

	next := append(append([]string{}, s.wordList...), word)
	sort.Strings(next)
	if err := s.flushWords(next); err != nil {
		return err
	}
	s.words[word] = struct{}{}
	s.wordList = next
	return nil
}

func (s *Store) RemoveWord(word, callerID string) error {
	if !s.IsPrivileged(callerID) {
		return ErrNotAuthorized
	}
	word = strings.ToLower(strings.TrimSpace(word))

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.words[word]; !ok {
		return ErrNotFound
	}

	next := lo.Filter(s.wordList, func(w string, _ int) bool { return w != word })
	if err := s.flushWords(next); err != nil {
		return err
	}
	delete(s.words, word)
	s.wordList = next
	return nil
}

func (s *Store) AddPrivileged(userID, callerID string) error {
	if callerID != s.ownerID {
		return ErrNotAuthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.privileged[userID]; ok {
		return ErrAlreadyPrivileged
	}

	next := append(sortedKeys(s.privileged), userID)
	sort.Strings(next)
	if err := s.flushPrivileged(next); err != nil {
		return err
	}
	s.privileged[userID] = struct{}{}
	return nil
}

func (s *Store) RemovePrivileged(userID, callerID string) error {
	if callerID != s.ownerID {
		return ErrNotAuthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.privileged[userID]; !ok {
		return ErrNotPrivileged
	}

	next := lo.Filter(sortedKeys(s.privileged), func(id string, _ int) bool { return id != userID })
	if err := s.flushPrivileged(next); err != nil {
		return err
	}
	delete(s.privileged, userID)
	return nil
}

func (s *Store) flushWords(words []string) error {
	return os.WriteFile(s.wordsFile, []byte(strings.Join(words, "\n")+"\n"), 0o644)
}

func (s *Store) flushPrivileged(ids []string) error {
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.sudoFile, data, 0o644)
}
