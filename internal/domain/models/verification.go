package models

// VerificationStatus is the classified outcome of a verification attempt
type VerificationStatus string

const (
	VerificationStatusVerified        VerificationStatus = "VERIFIED"
	VerificationStatusAlreadyVerified VerificationStatus = "ALREADY_VERIFIED"
	VerificationStatusFailed          VerificationStatus = "FAILED"
)

// DefaultVerificationFailure is reported when a failure carries no message of its own
const DefaultVerificationFailure = "Failed to verify"

// VerificationRequest asks the verification service to match on-chain bytecode against source
type VerificationRequest struct {
	Address              string
	ContractName         string
	ConstructorArguments []any
}

// VerificationOutcome is a verification result classified at the verifier boundary
type VerificationOutcome struct {
	Status      VerificationStatus
	Message     string
	ExplorerURL string
}

// Verified reports a successful verification
func Verified(explorerURL string) *VerificationOutcome {
	return &VerificationOutcome{
		Status:      VerificationStatusVerified,
		Message:     "Contract verified successfully",
		ExplorerURL: explorerURL,
	}
}

// AlreadyVerified reports that the explorer already had matching source
func AlreadyVerified(explorerURL string) *VerificationOutcome {
	return &VerificationOutcome{
		Status:      VerificationStatusAlreadyVerified,
		Message:     "Already verified!",
		ExplorerURL: explorerURL,
	}
}

// VerificationFailed reports any other failure. An empty reason falls back to DefaultVerificationFailure.
func VerificationFailed(reason string) *VerificationOutcome {
	if reason == "" {
		reason = DefaultVerificationFailure
	}
	return &VerificationOutcome{
		Status:  VerificationStatusFailed,
		Message: reason,
	}
}

// Succeeded is true for both verified and already-verified outcomes
func (o *VerificationOutcome) Succeeded() bool {
	return o != nil && (o.Status == VerificationStatusVerified || o.Status == VerificationStatusAlreadyVerified)
}
