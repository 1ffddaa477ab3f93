package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	constants "wordrush/internal/constants"
	dictionary "wordrush/internal/dictionary"
	models "wordrush/internal/models"
)

func testConstraints() models.Constraints {
	return ConstraintsFor(0)
}

func testCategories() *dictionary.CategoryTable {
	return dictionary.NewCategoryTable(map[string][]string{
		"animals": {"tiger", "zebra", "otter"},
		"colors":  {"green", "purple"},
	})
}

func TestValidateRejectsEmptyAndNonEnglish(t *testing.T) {
	cats := testCategories()
	c := testConstraints()

	_, reason := ValidateAnswer("   ", constants.ModeSnake, models.PromptMeta{StartLetter: "a"}, c, nil, cats)
	assert.Equal(t, constants.RejectEmptyWord, reason)

	_, reason = ValidateAnswer("abc123", constants.ModeSnake, models.PromptMeta{StartLetter: "a"}, c, nil, cats)
	assert.Equal(t, constants.RejectNotEnglish, reason)

	_, reason = ValidateAnswer("two words", constants.ModeSnake, models.PromptMeta{StartLetter: "t"}, c, nil, cats)
	assert.Equal(t, constants.RejectNotEnglish, reason)
}

func TestValidateLengthBounds(t *testing.T) {
	cats := testCategories()
	c := testConstraints()

	_, reason := ValidateAnswer("at", constants.ModeSnake, models.PromptMeta{StartLetter: "a"}, c, nil, cats)
	assert.Equal(t, constants.RejectLengthOutOfRange, reason)

	_, reason = ValidateAnswer("abcdefghijk", constants.ModeSnake, models.PromptMeta{StartLetter: "a"}, c, nil, cats)
	assert.Equal(t, constants.RejectLengthOutOfRange, reason)
}

func TestValidateNeverAcceptsUsedWord(t *testing.T) {
	cats := testCategories()
	c := testConstraints()
	used := map[string]struct{}{"tiger": {}}

	for _, mode := range []string{constants.ModeSnake, constants.ModeLadder, constants.ModeCategory, constants.ModeStop} {
		meta := models.PromptMeta{StartLetter: "t", Base: "tiger", Category: "animals", Forbidden: "z"}
		_, reason := ValidateAnswer("TIGER", mode, meta, c, used, cats)
		assert.Equal(t, constants.RejectAlreadyUsed, reason, "mode %s", mode)
	}
}

func TestValidateSnakeMode(t *testing.T) {
	cats := testCategories()
	c := testConstraints()
	meta := models.PromptMeta{StartLetter: "e"}

	word, reason := ValidateAnswer("eagle", constants.ModeSnake, meta, c, nil, cats)
	assert.Empty(t, reason)
	assert.Equal(t, "eagle", word)

	_, reason = ValidateAnswer("apple", constants.ModeSnake, meta, c, nil, cats)
	assert.Equal(t, constants.RejectWrongStart, reason)
}

func TestValidateLadderMode(t *testing.T) {
	cats := testCategories()
	c := testConstraints()
	meta := models.PromptMeta{Base: "cat"}

	_, reason := ValidateAnswer("cot", constants.ModeLadder, meta, c, nil, cats)
	assert.Empty(t, reason)

	_, reason = ValidateAnswer("cats", constants.ModeLadder, meta, c, nil, cats)
	assert.Equal(t, constants.RejectLengthMismatch, reason)

	_, reason = ValidateAnswer("dog", constants.ModeLadder, meta, c, nil, cats)
	assert.Equal(t, constants.RejectNotOneLetterChange, reason)

	_, reason = ValidateAnswer("cat", constants.ModeLadder, meta, c, nil, cats)
	assert.Equal(t, constants.RejectNotOneLetterChange, reason)
}

func TestValidateCategoryMode(t *testing.T) {
	cats := testCategories()
	c := testConstraints()
	meta := models.PromptMeta{Category: "animals"}

	_, reason := ValidateAnswer("Tiger", constants.ModeCategory, meta, c, nil, cats)
	assert.Empty(t, reason)

	_, reason = ValidateAnswer("green", constants.ModeCategory, meta, c, nil, cats)
	assert.Equal(t, constants.RejectNotInCategory, reason)
}

func TestValidateStopMode(t *testing.T) {
	cats := testCategories()
	c := testConstraints()
	meta := models.PromptMeta{Forbidden: "a"}

	_, reason := ValidateAnswer("sky", constants.ModeStop, meta, c, nil, cats)
	assert.Empty(t, reason)

	_, reason = ValidateAnswer("data", constants.ModeStop, meta, c, nil, cats)
	assert.Equal(t, constants.RejectForbiddenLetterPresent, reason)
}

func TestHammingDistance(t *testing.T) {
	assert.Equal(t, 0, hammingDistance("cat", "cat"))
	assert.Equal(t, 1, hammingDistance("cat", "cot"))
	assert.Equal(t, 3, hammingDistance("cat", "dog"))
}
