package matching

import "strings"

// Overlap counts the labels present in both sets.
func Overlap(a, b TagSet) int {
	i, j, n := 0, 0, 0
	for i < len(a.tags) && j < len(b.tags) {
		switch {
		case a.tags[i] == b.tags[j]:
			n++
			i++
			j++
		case a.tags[i] < b.tags[j]:
			i++
		default:
			j++
		}
	}
	return n
}

// Jaccard is |A∩B| / |A∪B|, and 0 when either side is empty.
func Jaccard(a, b TagSet) float64 {
	if a.Empty() || b.Empty() {
		return 0
	}
	inter := Overlap(a, b)
	union := a.Len() + b.Len() - inter
	return float64(inter) / float64(union)
}

// Similarity normalizes two raw label lists and returns their Jaccard index.
func Similarity(a, b []string) float64 {
	return Jaccard(NewTagSet(a...), NewTagSet(b...))
}

// TextBonus adds goalBonus for every term found as a substring of goals and
// bioBonus for every term found inside bio. Matching is plain lowercase
// substring containment, so "java" also hits "javascript".
func TextBonus(terms TagSet, goals, bio string, goalBonus, bioBonus float64) float64 {
	if terms.Empty() {
		return 0
	}
	goals = strings.ToLower(goals)
	bio = strings.ToLower(bio)
	bonus := 0.0
	for _, t := range terms.tags {
		if goals != "" && strings.Contains(goals, t) {
			bonus += goalBonus
		}
		if bio != "" && strings.Contains(bio, t) {
			bonus += bioBonus
		}
	}
	return bonus
}

// Ramp maps a count onto [0,1] linearly, saturating at limit.
func Ramp(n int, limit float64) float64 {
	if n <= 0 || limit <= 0 {
		return 0
	}
	return clamp01(float64(n) / limit)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
