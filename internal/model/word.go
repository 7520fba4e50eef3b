// Package model defines domain entities for the application.
package model

import "time"

// TimestampLayout is the wire format of word timestamps and server time.
const TimestampLayout = "2006-01-02 15:04:05"

// Word represents a saved word as stored by the API.
type Word struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Entry converts a stored Word to its wire representation.
func (w *Word) Entry() WordEntry {
	return WordEntry{
		ID:        w.ID,
		Text:      w.Text,
		Timestamp: w.Timestamp.Format(TimestampLayout),
	}
}

// WordEntry is a word as seen by clients of the API.
// The timestamp is kept as the server formatted it.
type WordEntry struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}
