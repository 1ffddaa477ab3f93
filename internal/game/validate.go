package game

import (
	"fmt"
	"strings"

	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	models "wordrush/internal/models"
)

// ValidateAnswer checks a submitted word against the active mode and
// constraints. It returns the normalized word and an empty reason on
// accept, or a reject reason code. It never mutates match state; the
// caller applies score and anti-repeat updates on accept.
func ValidateAnswer(raw, mode string, meta models.PromptMeta, c models.Constraints, used map[string]struct{}, cats *dictionary.CategoryTable) (string, string) {
	word := strings.ToLower(strings.TrimSpace(raw))
	if word == "" {
		return word, constants.RejectEmptyWord
	}
	if !dictionary.IsEnglish(word) {
		return word, constants.RejectNotEnglish
	}
	if len(word) < c.MinLen || len(word) > c.MaxLen {
		return word, constants.RejectLengthOutOfRange
	}
	if _, ok := used[word]; ok {
		return word, constants.RejectAlreadyUsed
	}

	switch mode {
	case constants.ModeSnake:
		if !strings.HasPrefix(word, meta.StartLetter) {
			return word, constants.RejectWrongStart
		}
	case constants.ModeLadder:
		base := strings.ToLower(meta.Base)
		if len(word) != len(base) {
			return word, constants.RejectLengthMismatch
		}
		if hammingDistance(word, base) != 1 {
			return word, constants.RejectNotOneLetterChange
		}
	case constants.ModeCategory:
		if !cats.Contains(meta.Category, word) {
			return word, constants.RejectNotInCategory
		}
	case constants.ModeStop:
		if strings.Contains(word, meta.Forbidden) {
			return word, constants.RejectForbiddenLetterPresent
		}
	}
	return word, ""
}

func hammingDistance(a, b string) int {
	diff := 0
	for i := range a {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}

// RejectMessage renders a reject reason as the user-facing reply for the
// originating room.
func RejectMessage(reason string, meta models.PromptMeta, c models.Constraints) string {
	switch reason {
	case constants.RejectEmptyWord:
		return "Send a word"
	case constants.RejectNotEnglish:
		return "English letters only"
	case constants.RejectLengthOutOfRange:
		return fmt.Sprintf("Length %d-%d required", c.MinLen, c.MaxLen)
	case constants.RejectAlreadyUsed:
		return "Word already used this match"
	case constants.RejectWrongStart:
		return "Must start with '" + strings.ToUpper(meta.StartLetter) + "'"
	case constants.RejectLengthMismatch:
		return "Length mismatch"
	case constants.RejectNotOneLetterChange:
		return "Must change exactly one letter"
	case constants.RejectNotInCategory:
		return "Not in category '" + strings.ToUpper(meta.Category) + "'"
	case constants.RejectForbiddenLetterPresent:
		return "Forbidden letter '" + strings.ToUpper(meta.Forbidden) + "'"
	}
	return "Rejected"
}
