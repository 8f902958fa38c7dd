package similarity

import (
	"math"
	"strings"
	"testing"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		reference string
		want      float64
	}{
		{"identical", "hello world", "hello world", 1.0},
		{"case and whitespace normalized", "  Hello World  ", "hello world", 1.0},
		{"both empty", "", "", 1.0},
		{"candidate empty", "", "abc", 0.0},
		{"no overlap", "dog", "cat", 0.0},
		{"one rune missing", "ab", "abc", 0.8},
		{"shifted block", "abcd", "bcde", 0.75},
		{"near miss typo", "i go too school", "i go to school", 28.0 / 29.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ratio(tc.candidate, tc.reference)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Ratio(%q, %q) = %v, want %v", tc.candidate, tc.reference, got, tc.want)
			}
		})
	}
}

func TestRatioLongSequences(t *testing.T) {
	// Past 200 runes the index drops runes covering more than 1% of the
	// reference; matches through those runes must still be found by block
	// extension, including extension from an empty seed.
	repeated := strings.Repeat("ab", 150)
	cases := []struct {
		name      string
		candidate string
		reference string
		want      float64
	}{
		{"identical, every rune too frequent to index", repeated, repeated, 1.0},
		{"rare suffix after a frequent-rune prefix", "xyz", strings.Repeat("a", 200) + "xyz", 6.0 / 206.0},
		{"frequent-rune run with one extra rune", repeated + "q", repeated, 600.0 / 601.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Ratio(tc.candidate, tc.reference)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Ratio = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRatioIsDeterministic(t *testing.T) {
	first := Ratio("she sells sea shells", "she sells seashells by the shore")
	for i := 0; i < 10; i++ {
		if got := Ratio("she sells sea shells", "she sells seashells by the shore"); got != first {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}

func TestIsCorrect(t *testing.T) {
	// The threshold is strict: exactly 0.8 does not pass.
	if IsCorrect(Ratio("ab", "abc")) {
		t.Fatal("score of exactly 0.8 should not be correct")
	}
	if !IsCorrect(0.81) {
		t.Fatal("0.81 should be correct")
	}
	if IsCorrect(0.79) {
		t.Fatal("0.79 should not be correct")
	}
	if !IsCorrect(Ratio("i go too school", "i go to school")) {
		t.Fatal("near-identical answer should be correct")
	}
}

func TestFeedback(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "Tuyệt vời! Bản dịch của bạn rất chính xác!"},
		{0.9, "Tuyệt vời! Bản dịch của bạn rất chính xác!"},
		{0.85, "Tốt! Bản dịch của bạn khá chính xác!"},
		{0.8, "Tốt! Bản dịch của bạn khá chính xác!"},
		{0.7, "Khá tốt! Có một vài lỗi nhỏ."},
		{0.6, "Khá tốt! Có một vài lỗi nhỏ."},
		{0.5, "Cần cải thiện! Bản dịch có nhiều lỗi."},
		{0.4, "Cần cải thiện! Bản dịch có nhiều lỗi."},
		{0.2, "Cần cố gắng nhiều hơn! Hãy xem lại đáp án đúng."},
		{0.0, "Cần cố gắng nhiều hơn! Hãy xem lại đáp án đúng."},
	}
	for _, tc := range cases {
		if got := Feedback(tc.score); got != tc.want {
			t.Fatalf("Feedback(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRatioUnicode(t *testing.T) {
	// Vietnamese diacritics are single runes; an accent difference costs
	// exactly one rune on each side.
	got := Ratio("Tôi đi học", "tôi đi học")
	if got != 1.0 {
		t.Fatalf("case-only difference: got %v, want 1.0", got)
	}
	got = Ratio("toi đi học", "tôi đi học")
	want := 2.0 * 9.0 / 20.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("single diacritic difference: got %v, want %v", got, want)
	}
}
