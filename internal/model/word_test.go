package model

import (
	"testing"
	"time"
)

func TestWord_Entry(t *testing.T) {
	w := &Word{
		ID:        7,
		Text:      "Docker",
		Timestamp: time.Date(2025, 3, 9, 14, 5, 2, 999, time.UTC),
	}

	entry := w.Entry()

	if entry.ID != 7 {
		t.Errorf("ID = %d, want 7", entry.ID)
	}
	if entry.Text != "Docker" {
		t.Errorf("Text = %q, want Docker", entry.Text)
	}
	if entry.Timestamp != "2025-03-09 14:05:02" {
		t.Errorf("Timestamp = %q, want 2025-03-09 14:05:02", entry.Timestamp)
	}
}
