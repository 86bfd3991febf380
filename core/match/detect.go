package match

import (
	"unicode/utf8"

	"github.com/hifzlab/isnad/core/arabic"
)

// DetectedSegment is an Arabic segment found by DetectAndValidate together
// with its validation result. Start and End are byte offsets into the source
// text, a half-open interval.
type DetectedSegment struct {
	Text   string `json:"text"`
	Start  int    `json:"start_index"`
	End    int    `json:"end_index"`
	Result Result `json:"validation"`
}

// Detection is the outcome of scanning free text for verse content.
type Detection struct {
	// Detected reports whether any segment validated or matched fuzzily.
	Detected bool `json:"detected"`
	// Segments are the Arabic segments that met the minimum length, each
	// with its validation result.
	Segments []DetectedSegment `json:"segments"`
}

// DetectAndValidate extracts every Arabic segment of at least the configured
// minimum length and validates each against the corpus. This is the
// engine-level scan for callers that want per-segment verdicts without the
// quote-extraction pipeline.
func (e *Engine) DetectAndValidate(text string) Detection {
	segments := arabic.ExtractSegments(text)
	if len(segments) == 0 {
		return Detection{}
	}

	var detection Detection
	for _, seg := range segments {
		if utf8.RuneCountInString(seg.Text) < e.opts.MinDetectionLength {
			continue
		}
		detection.Segments = append(detection.Segments, DetectedSegment{
			Text:   seg.Text,
			Start:  seg.Start,
			End:    seg.End,
			Result: e.Validate(seg.Text),
		})
	}

	for _, seg := range detection.Segments {
		if seg.Result.IsValid || seg.Result.Kind == Fuzzy {
			detection.Detected = true
			break
		}
	}

	return detection
}
