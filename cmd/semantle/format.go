package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/headlands-org/go-semantle/solver"
)

var errNotFloat = errors.New("reported similarity was not a float")

// parseGuess parses "<guess>, <similarity>". ok is false when the line does
// not contain the separator at all, which callers treat as "ask again".
func parseGuess(line string) (g solver.Guess, ok bool, err error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.Contains(line, ", ") {
		return solver.Guess{}, false, nil
	}
	parts := strings.Split(line, ", ")
	if len(parts) != 2 {
		return solver.Guess{}, true, errNotFloat
	}
	reported, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return solver.Guess{}, true, errNotFloat
	}
	return solver.Guess{Word: strings.TrimSpace(parts[0]), Reported: reported}, true, nil
}

// makeList renders words as 'a', 'a' and 'b', or 'a', 'b', and 'c'.
func makeList(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return "'" + words[0] + "'"
	case 2:
		return "'" + words[0] + "' and '" + words[1] + "'"
	}
	return "'" + strings.Join(words[:len(words)-1], "', '") + "', and '" + words[len(words)-1] + "'"
}
