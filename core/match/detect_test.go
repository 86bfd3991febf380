package match_test

import (
	"testing"

	"github.com/hifzlab/isnad/core/match"
	"github.com/hifzlab/isnad/internal/corpustest"
)

// TestDetectAndValidate verifies the engine-level scan finds and validates
// verse content embedded in mixed text.
func TestDetectAndValidate(t *testing.T) {
	e := newEngine(t)

	text := "The opening verse " + corpustest.Fatiha1 + " is recited in every prayer."
	detection := e.DetectAndValidate(text)

	if !detection.Detected {
		t.Fatal("verse content not detected")
	}
	if len(detection.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(detection.Segments))
	}

	seg := detection.Segments[0]
	if seg.Result.Kind != match.Exact {
		t.Errorf("segment kind = %v, want exact", seg.Result.Kind)
	}
	if seg.Result.Reference != "1:1" {
		t.Errorf("segment reference = %q, want \"1:1\"", seg.Result.Reference)
	}
	if seg.Start < 0 || seg.End > len(text) || seg.Start >= seg.End {
		t.Errorf("segment interval [%d, %d) out of bounds", seg.Start, seg.End)
	}
}

// TestDetectAndValidateMinLength verifies short segments are skipped.
func TestDetectAndValidateMinLength(t *testing.T) {
	e := newEngine(t)

	// 8 runes of Arabic: below the default minimum of 10.
	detection := e.DetectAndValidate("short بسم الله here")
	if len(detection.Segments) != 0 {
		t.Errorf("got %d segments, want 0 for sub-minimum text", len(detection.Segments))
	}
	if detection.Detected {
		t.Error("detection reported positive with no qualifying segments")
	}
}

// TestDetectAndValidateNoArabic verifies a clean negative result.
func TestDetectAndValidateNoArabic(t *testing.T) {
	e := newEngine(t)

	detection := e.DetectAndValidate("entirely latin text, nothing to see")
	if detection.Detected || len(detection.Segments) != 0 {
		t.Errorf("DetectAndValidate = %+v, want empty", detection)
	}
}

// TestDetectAndValidateUnknownArabic verifies non-corpus Arabic is reported
// but the overall detection stays negative.
func TestDetectAndValidateUnknownArabic(t *testing.T) {
	e := newEngine(t)

	detection := e.DetectAndValidate("he wrote السلام عليكم ورحمة الله وبركاته as a greeting")
	if len(detection.Segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(detection.Segments))
	}
	if detection.Segments[0].Result.Kind != match.None {
		t.Errorf("greeting matched as %v", detection.Segments[0].Result.Kind)
	}
	if detection.Detected {
		t.Error("detection reported positive for non-verse Arabic")
	}
}
