package arabic

import (
	"testing"
)

// TestSimilarityIdentical verifies identical strings score 1.0.
func TestSimilarityIdentical(t *testing.T) {
	for _, s := range []string{"", "a", "بسم الله", "hello world"} {
		if got := Similarity(s, s); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

// TestSimilarityEmpty verifies either-empty comparisons score 0.0.
func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "x"); got != 0.0 {
		t.Errorf("Similarity(\"\", \"x\") = %v, want 0.0", got)
	}
	if got := Similarity("x", ""); got != 0.0 {
		t.Errorf("Similarity(\"x\", \"\") = %v, want 0.0", got)
	}
}

// TestSimilaritySymmetric verifies Similarity(a, b) == Similarity(b, a).
func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"بسم الله", "بسم اللة"},
		{"kitten", "sitting"},
		{"قل هو الله احد", "قل هو الله"},
		{"abc", "xyz"},
	}

	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

// TestSimilarityKnownDistances verifies scores against hand-computed edit distances.
func TestSimilarityKnownDistances(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		// distance 3, max length 7
		{"kitten", "sitting", 1.0 - 3.0/7.0},
		// distance 1, max length 4
		{"abcd", "abcx", 0.75},
		// completely different
		{"aaaa", "bbbb", 0.0},
	}

	for _, tt := range tests {
		got := Similarity(tt.a, tt.b)
		if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestSimilarityRuneGranularity verifies the metric operates on code points,
// not bytes: one substituted Arabic letter is one edit.
func TestSimilarityRuneGranularity(t *testing.T) {
	a := "بسم" // 3 runes
	b := "بسن" // 1 substitution
	got := Similarity(a, b)
	want := 1.0 - 1.0/3.0
	if diff := got - want; diff > 1e-12 || diff < -1e-12 {
		t.Errorf("Similarity(%q, %q) = %v, want %v", a, b, got, want)
	}
}

// TestLevenshtein verifies the distance itself.
func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		got := Levenshtein([]rune(tt.a), []rune(tt.b))
		if got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Zero only for equal strings.
		if (got == 0) != (tt.a == tt.b) {
			t.Errorf("Levenshtein(%q, %q) = 0 incorrectly", tt.a, tt.b)
		}
	}
}

// TestFindDifferencesEqual verifies equal strings yield no differences.
func TestFindDifferencesEqual(t *testing.T) {
	if diffs := FindDifferences("بسم الله", "بسم الله"); len(diffs) != 0 {
		t.Errorf("FindDifferences on equal strings = %v, want none", diffs)
	}
}

// TestFindDifferencesSubstitution verifies a single differing run.
func TestFindDifferencesSubstitution(t *testing.T) {
	diffs := FindDifferences("abXd", "abcd")
	if len(diffs) != 1 {
		t.Fatalf("got %d differences, want 1", len(diffs))
	}
	d := diffs[0]
	if d.Input != "X" || d.Correct != "c" || d.Position != 2 {
		t.Errorf("difference = %+v, want {X c 2}", d)
	}
}

// TestFindDifferencesMultipleRuns verifies alternating equal/differing runs.
func TestFindDifferencesMultipleRuns(t *testing.T) {
	diffs := FindDifferences("aXcYe", "abcde")
	if len(diffs) != 2 {
		t.Fatalf("got %d differences, want 2: %v", len(diffs), diffs)
	}
	if diffs[0].Position != 1 || diffs[0].Input != "X" || diffs[0].Correct != "b" {
		t.Errorf("diffs[0] = %+v", diffs[0])
	}
	if diffs[1].Position != 3 || diffs[1].Input != "Y" || diffs[1].Correct != "d" {
		t.Errorf("diffs[1] = %+v", diffs[1])
	}
}

// TestFindDifferencesTrailing verifies the length-mismatch tail markers.
func TestFindDifferencesTrailing(t *testing.T) {
	// Input shorter than correct: the missing tail is one difference.
	diffs := FindDifferences("abc", "abcdef")
	if len(diffs) != 1 {
		t.Fatalf("got %d differences, want 1: %v", len(diffs), diffs)
	}
	if diffs[0].Input != "(missing)" || diffs[0].Correct != "def" || diffs[0].Position != 3 {
		t.Errorf("difference = %+v, want {(missing) def 3}", diffs[0])
	}

	// Input longer than correct.
	diffs = FindDifferences("abcdef", "abc")
	if len(diffs) != 1 {
		t.Fatalf("got %d differences, want 1: %v", len(diffs), diffs)
	}
	if diffs[0].Input != "def" || diffs[0].Correct != "(extra)" || diffs[0].Position != 3 {
		t.Errorf("difference = %+v, want {def (extra) 3}", diffs[0])
	}
}

// BenchmarkSimilarity measures the edit-distance scan cost on verse-sized strings.
func BenchmarkSimilarity(b *testing.B) {
	a := "بسم الله الرحمن الرحيم الحمد لله رب العالمين"
	c := "بسم الله الرحمن الرحيم الحمد لله رب العلمين"
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Similarity(a, c)
	}
}
