package models

import (
	"strings"
	"testing"
)

func TestReportExcerpt(t *testing.T) {
	short := &CommunityReport{Content: "they asked for gift cards"}
	if got := short.Excerpt(100); got != short.Content {
		t.Errorf("short content should pass through, got %q", got)
	}

	long := &CommunityReport{Content: strings.Repeat("a", 150)}
	got := long.Excerpt(100)
	if len(got) != 103 {
		t.Errorf("excerpt length = %d, want 103", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated excerpt should end in ellipsis, got %q", got)
	}

	if got := long.Excerpt(0); got != long.Content {
		t.Errorf("non-positive maxLen should pass through, got %d chars", len(got))
	}
}
