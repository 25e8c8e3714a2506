package tui

import "time"

// tickMsg triggers a re-read of the notification feed.
type tickMsg time.Time

// mutationDoneMsg is sent when a store mutation finishes.
type mutationDoneMsg struct {
	err error
	op  string
}
