package session

import "time"

// Store abstracts session persistence.
type Store interface {
	Save(s *Session) error
	Load(id string) (*Session, error)
	List() ([]SessionInfo, error)
	Delete(id string) error
	Close() error
}

// SessionInfo is a lightweight row for session listings.
type SessionInfo struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Messages  int
	Minutes   int
	Tokens    int
}
