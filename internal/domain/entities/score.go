package entities

import (
	"strings"
	"time"
)

// AnonymousUser is the ledger key used when no user name is given.
const AnonymousUser = "anonymous"

// ScoreRecord is the last completed result of a user.
// There is one record per user name and every completed session overwrites it.
type ScoreRecord struct {
	UserName       string    `json:"user_name"`
	Score          int       `json:"score"`
	Total          int       `json:"total"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	Timestamp      time.Time `json:"timestamp"`
	Sheet          string    `json:"sheet"`
	Lesson         string    `json:"lesson"`
	Mode           Mode      `json:"mode"`
	Range          Range     `json:"range"`
}

// NormalizeUserName trims a user name and falls back to AnonymousUser.
func NormalizeUserName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousUser
	}
	return name
}
