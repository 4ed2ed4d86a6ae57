package ceremony

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSchema is returned when a contribution file is not valid
	// against the embedded JSON schema.
	ErrInvalidSchema = errors.New("ceremony: contribution file does not match the schema")

	// ErrPubkeyCheck is returned when the pot pubkey does not account for the
	// change between the previous running product and the new first power.
	ErrPubkeyCheck = errors.New("ceremony: potPubkey does not match the transcript")

	// ErrG1PowersCheck is returned when consecutive G1 powers do not share a
	// common ratio with the first G2 power.
	ErrG1PowersCheck = errors.New("ceremony: G1 powers are not consecutive powers of tau")

	// ErrG2PowersCheck is returned when the G2 powers do not carry the same
	// scalars as the matching G1 powers.
	ErrG2PowersCheck = errors.New("ceremony: G2 powers do not match the G1 powers")

	// ErrBatchCheckFailed is returned when a merged batch of pairing checks
	// does not hold; the failing sub-ceremony cannot be attributed.
	ErrBatchCheckFailed = errors.New("ceremony: batched pairing checks failed")
)

// CountError reports a mismatch between an expected and an actual element
// count, e.g. of sub-contributions or powers.
type CountError struct {
	What     string
	Expected int
	Actual   int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("ceremony: unexpected number of %s: expected %d, got %d", e.What, e.Expected, e.Actual)
}

// SubContributionError wraps an error with the index of the sub-ceremony it
// occurred in.
type SubContributionError struct {
	Index int
	Err   error
}

func (e *SubContributionError) Error() string {
	return fmt.Sprintf("ceremony: sub-contribution %d: %v", e.Index, e.Err)
}

func (e *SubContributionError) Unwrap() error { return e.Err }

// PointError wraps a point decoding or subgroup failure with its location.
// Index is -1 for the pot pubkey.
type PointError struct {
	Group string
	Index int
	Err   error
}

func (e *PointError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("ceremony: invalid %s: %v", e.Group, e.Err)
	}
	return fmt.Sprintf("ceremony: invalid %s power %d: %v", e.Group, e.Index, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }
