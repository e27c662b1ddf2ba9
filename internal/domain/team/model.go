package team

import "time"

// Team is one owner's fantasy franchise in the wildcard competition.
type Team struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}
