package model

import "time"

// CustomerTier is the loyalty classification of a customer.
type CustomerTier string

const (
	TierStandard CustomerTier = "Standard"
	TierVIP      CustomerTier = "VIP"
	TierVVIP     CustomerTier = "VVIP"
)

type Customer struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Phone      string       `json:"phone"`
	Email      string       `json:"email"`
	Address    string       `json:"address"`
	Tier       CustomerTier `json:"tier"`
	TotalSpent float64      `json:"total_spent"`
	Notes      string       `json:"notes"`
	CreatedAt  time.Time    `json:"created_at"`
}
