// Package cerberus contains the process-wide constants for Cerberus, the
// proof-of-work gatekeeper bot for Telegram groups.
package cerberus

// Version is the current version of Cerberus, set at build time.
var Version = "devel"

const (
	// DefaultDifficulty is the number of leading zero hex digits a solution
	// hash needs. Expected work is 16^difficulty hash evaluations.
	DefaultDifficulty = 2

	// DefaultSecretLength is the length of the random alphanumeric secret
	// embedded in every challenge.
	DefaultSecretLength = 16

	// DefaultPoWBaseURL is where new members get sent to mine their nonce.
	// Operators should point this at their own copy of the solver page.
	DefaultPoWBaseURL = "https://example.com/pow.html"
)
