package model

import "time"

// MemberStatus tracks whether a staff member is currently working.
type MemberStatus string

const (
	MemberActive  MemberStatus = "Active"
	MemberOnLeave MemberStatus = "OnLeave"
)

// Member is a staff record. Department and Role are open vocabularies: known
// values round-trip through the translation tables, anything else is
// slugified on the way out.
type Member struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Phone      string       `json:"phone"`
	Department string       `json:"department"`
	Role       string       `json:"role"`
	Status     MemberStatus `json:"status"`
	JoinedAt   time.Time    `json:"joined_at"`
}
