package arabic

// Similarity returns an edit-distance similarity score in [0, 1] between two
// strings. Identical strings score 1.0, and any comparison against an empty
// string scores 0.0. Otherwise the score is
//
//	1 - levenshtein(a, b) / max(len(a), len(b))
//
// computed over Unicode code points. Similarity is symmetric.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	distance := Levenshtein(ra, rb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// Levenshtein returns the edit distance between two rune slices using unit
// cost for insertion, deletion, and substitution.
func Levenshtein(a, b []rune) int {
	m := len(a)
	n := len(b)

	// Two-row dynamic programming over the standard recurrence.
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				del := prev[j] + 1
				ins := curr[j-1] + 1
				sub := prev[j-1] + 1
				min := del
				if ins < min {
					min = ins
				}
				if sub < min {
					min = sub
				}
				curr[j] = min
			}
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// Difference is one differing run between an input string and the correct
// string, reported by FindDifferences. Position is the rune index where the
// run starts.
type Difference struct {
	Input    string `json:"input"`
	Correct  string `json:"correct"`
	Position int    `json:"position"`
}

// Placeholders used when one side of a trailing difference is empty.
const (
	missingMarker = "(missing)"
	extraMarker   = "(extra)"
)

// FindDifferences partitions two strings into alternating equal and differing
// runs by positional comparison, reporting each differing run. A trailing
// length mismatch is reported as one final difference; a side with no
// remaining text is marked "(missing)" or "(extra)".
func FindDifferences(input, correct string) []Difference {
	var differences []Difference

	in := []rune(input)
	cr := []rune(correct)

	minLen := len(in)
	if len(cr) < minLen {
		minLen = len(cr)
	}

	diffStart := -1
	var inputChunk, correctChunk []rune

	for i := 0; i < minLen; i++ {
		if in[i] != cr[i] {
			if diffStart == -1 {
				diffStart = i
			}
			inputChunk = append(inputChunk, in[i])
			correctChunk = append(correctChunk, cr[i])
		} else if diffStart != -1 {
			differences = append(differences, Difference{
				Input:    string(inputChunk),
				Correct:  string(correctChunk),
				Position: diffStart,
			})
			diffStart = -1
			inputChunk = nil
			correctChunk = nil
		}
	}

	if diffStart != -1 || len(in) != len(cr) {
		if diffStart == -1 {
			diffStart = minLen
		}

		inputChunk = append(inputChunk, in[diffStart+len(inputChunk):]...)
		correctChunk = append(correctChunk, cr[diffStart+len(correctChunk):]...)

		if len(inputChunk) > 0 || len(correctChunk) > 0 {
			d := Difference{
				Input:    string(inputChunk),
				Correct:  string(correctChunk),
				Position: diffStart,
			}
			if d.Input == "" {
				d.Input = missingMarker
			}
			if d.Correct == "" {
				d.Correct = extraMarker
			}
			differences = append(differences, d)
		}
	}

	return differences
}
