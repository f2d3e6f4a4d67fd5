package models

// Ancestor is one hop of a sponsor chain, as seen by the distribution walk.
type Ancestor struct {
	UserID   int64
	Level    int
	IsActive bool
}

type MemberSummary struct {
	UserID   int64  `json:"user_id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	IsActive bool   `json:"is_active" db:"is_active"`
}

// NetworkSnapshot holds the downline of one user, Levels[0] being level 1.
type NetworkSnapshot struct {
	UserID int64                     `json:"user_id"`
	Levels [MaxLevel][]MemberSummary `json:"levels"`
}

// DownlineEntry is one row of the materialized network index.
type DownlineEntry struct {
	Level  int
	Member MemberSummary
}
