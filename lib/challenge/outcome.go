package challenge

// Outcome is the result of verifying a submission against an outstanding
// challenge.
type Outcome int

const (
	// OutcomeNoChallenge means no challenge is outstanding for the pair.
	// Callers should ignore the submission, this is the common case for
	// ordinary chat messages from already-verified members.
	OutcomeNoChallenge Outcome = iota

	// OutcomeInvalidFormat means the submission is not a well-formed
	// non-negative integer literal. The challenge stays outstanding.
	OutcomeInvalidFormat

	// OutcomeRejected means the submission was well-formed but did not
	// solve the challenge. The challenge stays outstanding.
	OutcomeRejected

	// OutcomeAccepted means the submission solved the challenge and the
	// record has been retired. Callers must lift the member's restriction.
	OutcomeAccepted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChallenge:
		return "NoChallenge"
	case OutcomeInvalidFormat:
		return "InvalidFormat"
	case OutcomeRejected:
		return "Rejected"
	case OutcomeAccepted:
		return "Accepted"
	default:
		return "Unknown"
	}
}
