package roster

import "time"

// RosterPlayer links a fantasy team to a player in the shared pool.
// Created at roster assembly and never mutated; removed only on teardown.
type RosterPlayer struct {
	ID        string
	TeamID    string
	PlayerID  string
	CreatedAt time.Time
}
