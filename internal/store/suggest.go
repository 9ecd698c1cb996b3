package store

import (
	"path/filepath"
	"strings"
)

// SuggestFilename returns the stored filename closest to name by edit
// distance, for "did you mean" hints after a lookup miss. The boolean is
// false when nothing is within plausible typo range.
func (s *Store) SuggestFilename(name string) (string, bool) {
	target := strings.ToLower(name)
	// Two edits covers most typos; longer names get a little more slack.
	limit := max(2, len([]rune(target))/5)
	// A name typed without its extension still matches its file.
	compareStems := !strings.Contains(target, ".")

	best := ""
	bestDist := limit + 1
	for _, rec := range s.ListAll() {
		stored := strings.ToLower(rec.Filename)
		d := editDistance(target, stored)
		if compareStems {
			stem := strings.TrimSuffix(stored, filepath.Ext(stored))
			if sd := editDistance(target, stem); sd < d {
				d = sd
			}
		}
		if d < bestDist {
			best, bestDist = rec.Filename, d
		}
	}
	if bestDist > limit {
		return "", false
	}
	return best, true
}

// editDistance is the Damerau-Levenshtein distance between a and b:
// insertions, deletions, substitutions and adjacent transpositions each
// count as one edit. Transpositions matter here because filename typos are
// so often two swapped characters.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	d := make([][]int, len(ra)+1)
	for i := range d {
		d[i] = make([]int, len(rb)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i][j-1]+1, d[i-1][j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[len(ra)][len(rb)]
}
