package matching

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestJaccard(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "both empty", want: 0},
		{name: "one empty", a: []string{"go"}, want: 0},
		{name: "identical", a: []string{"go", "rust"}, b: []string{"rust", "go"}, want: 1},
		{name: "disjoint", a: []string{"go"}, b: []string{"rust"}, want: 0},
		{name: "one of three", a: []string{"react", "ui/ux"}, b: []string{"react", "node"}, want: 1.0 / 3},
		{name: "case insensitive", a: []string{"python", "data science"}, b: []string{"Python", "Data Science", "Machine Learning"}, want: 2.0 / 3},
		{name: "duplicates ignored", a: []string{"go", "go", "GO"}, b: []string{"go"}, want: 1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := Similarity(tc.a, tc.b)
			if !approx(got, tc.want) {
				t.Fatalf("Similarity: want=%v got=%v", tc.want, got)
			}
			if rev := Similarity(tc.b, tc.a); !approx(rev, got) {
				t.Fatalf("not symmetric: %v vs %v", got, rev)
			}
			if got < 0 || got > 1 {
				t.Fatalf("out of bounds: %v", got)
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	a := NewTagSet("a", "b", "c", "d")
	b := NewTagSet("b", "d", "e")
	if got := Overlap(a, b); got != 2 {
		t.Fatalf("Overlap: want=2 got=%d", got)
	}
	if got := Overlap(a, TagSet{}); got != 0 {
		t.Fatalf("Overlap with empty: want=0 got=%d", got)
	}
}

func TestTextBonus(t *testing.T) {
	terms := NewTagSet("java", "design")
	got := TextBonus(terms, "I want to learn JavaScript", "Design lead, java veteran", 0.5, 0.25)
	// "java" hits goals (substring of javascript) and bio; "design" hits bio only.
	if !approx(got, 0.5+0.25+0.25) {
		t.Fatalf("TextBonus: got=%v", got)
	}
	if got := TextBonus(TagSet{}, "java", "java", 0.5, 0.25); got != 0 {
		t.Fatalf("TextBonus with no terms: got=%v", got)
	}
}

func TestRamp(t *testing.T) {
	cases := []struct {
		n     int
		limit float64
		want  float64
	}{
		{0, 100, 0},
		{-3, 100, 0},
		{50, 100, 0.5},
		{100, 100, 1},
		{250, 100, 1},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := Ramp(tc.n, tc.limit); !approx(got, tc.want) {
			t.Fatalf("Ramp(%d, %v): want=%v got=%v", tc.n, tc.limit, tc.want, got)
		}
	}
}
