package game

import (
	"time"

	models "wordrush/internal/models"
)

// ConstraintsFor maps the cumulative accepted-word count of a match to the
// active difficulty tuple. The top tier also tightens the time limit.
func ConstraintsFor(wordCount int) models.Constraints {
	switch {
	case wordCount >= 100:
		return models.Constraints{MinLen: 10, MaxLen: 30, TimeLimit: 10 * time.Second}
	case wordCount >= 75:
		return models.Constraints{MinLen: 7, MaxLen: 30, TimeLimit: 15 * time.Second}
	default:
		return models.Constraints{MinLen: 3, MaxLen: 10, TimeLimit: 15 * time.Second}
	}
}
