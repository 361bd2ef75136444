package challenge

import "time"

// Challenge is the metadata about a single challenge issuance. At most one
// Challenge exists per (chat, user) pair; issuing again replaces it.
type Challenge struct {
	ID         string    `json:"id"`         // UUID identifying the challenge
	ChatID     int64     `json:"chatId"`     // Chat the member is gated in
	UserID     int64     `json:"userId"`     // Member being gated
	Secret     string    `json:"secret"`     // The random data the member hashes over
	Difficulty int       `json:"difficulty"` // Leading zero hex digits required of the solution
	IssuedAt   time.Time `json:"issuedAt"`   // When the challenge was issued
}
