package text

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines whose measured width fits budget.
//
// Words are packed greedily: a word joins the current line while the joined
// line still measures at most budget. A word that alone exceeds budget is
// broken into character chunks first, each chunk as long as possible while
// fitting; a single character wider than budget becomes its own chunk.
//
// Wrap always returns at least one line; empty or all-whitespace text yields
// a single empty line.
func Wrap(mt *Meter, text string, fontSize, budget float64) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}, nil
	}

	tokens := make([]string, 0, len(words))
	for _, word := range words {
		w, err := mt.Width(word, fontSize)
		if err != nil {
			return nil, err
		}
		if w <= budget {
			tokens = append(tokens, word)
			continue
		}
		chunks, err := fragment(mt, word, fontSize, budget)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, chunks...)
	}

	var lines []string
	line := tokens[0]
	for _, tok := range tokens[1:] {
		candidate := line + " " + tok
		w, err := mt.Width(candidate, fontSize)
		if err != nil {
			return nil, err
		}
		if w <= budget {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = tok
	}
	return append(lines, line), nil
}

// fragment breaks word into the fewest leading-greedy chunks that fit budget.
// Chunks are byte slices of word cut at rune boundaries, so their
// concatenation is word even when it is not valid UTF-8.
func fragment(mt *Meter, word string, fontSize, budget float64) ([]string, error) {
	var chunks []string
	start := 0
	for i := range word {
		if i == start {
			continue
		}
		_, size := utf8.DecodeRuneInString(word[i:])
		w, err := mt.Width(word[start:i+size], fontSize)
		if err != nil {
			return nil, err
		}
		if w > budget {
			chunks = append(chunks, word[start:i])
			start = i
		}
	}
	if start < len(word) {
		chunks = append(chunks, word[start:])
	}
	return chunks, nil
}

// Widest returns the largest measured width among lines.
func Widest(mt *Meter, lines []string, fontSize float64) (float64, error) {
	var widest float64
	for _, line := range lines {
		w, err := mt.Width(line, fontSize)
		if err != nil {
			return 0, err
		}
		widest = max(widest, w)
	}
	return widest, nil
}
