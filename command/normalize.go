package command

import (
	"strconv"
	"strings"

	"github.com/zucenko/conga/model"
)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	lastSpace := true
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

func tokenise(normalised string) []string {
	return strings.Fields(normalised)
}

// levenshteinLimit is the largest edit distance accepted for a word of n
// letters.
func levenshteinLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}

func parseIndex(token string) (int, bool) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

var directionWords = map[string]model.Direction{
	"d": model.DOWN, "down": model.DOWN, "s": model.DOWN, "south": model.DOWN,
	"l": model.LEFT, "left": model.LEFT, "w": model.LEFT, "west": model.LEFT,
	"u": model.UP, "up": model.UP, "n": model.UP, "north": model.UP,
	"r": model.RIGHT, "right": model.RIGHT, "e": model.RIGHT, "east": model.RIGHT,
}
