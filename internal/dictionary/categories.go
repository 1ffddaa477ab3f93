package dictionary

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strings"

	util "wordrush/internal/util"
)

var ErrNoCategories = errors.New("no categories loaded")

// CategoryTable is the static category → word-list mapping, loaded once at
// startup and read-only afterwards.
type CategoryTable struct {
	names []string
	sets  map[string]map[string]struct{}
}

func NewCategoryTable(raw map[string][]string) *CategoryTable {
	sets := make(map[string]map[string]struct{}, len(raw))
	names := make([]string, 0, len(raw))
	for name, words := range raw {
		name = strings.ToLower(name)
		set := make(map[string]struct{}, len(words))
		for _, w := range words {
			set[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
		sets[name] = set
		names = append(names, name)
	}
	sort.Strings(names)
	return &CategoryTable{names: names, sets: sets}
}

func LoadCategories(path string) (*CategoryTable, error) {
	util.LogInfo("Loading categories from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrNoCategories
	}

	t := NewCategoryTable(raw)
	util.LogInfo("Successfully loaded %d categories", len(t.names))
	return t, nil
}

func (t *CategoryTable) Names() []string {
	return t.names
}

func (t *CategoryTable) Contains(category, word string) bool {
	set, ok := t.sets[strings.ToLower(category)]
	if !ok {
		return false
	}
	_, ok = set[strings.ToLower(word)]
	return ok
}
