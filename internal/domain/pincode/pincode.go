package pincode

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the reference table has no entry for the given
// postal code. Callers treat it as a hard validation failure, never a default.
var ErrNotFound = errors.New("pincode not found")

// Pincode is one entry of the static postal reference table. The enrichment
// fields are copied into stored addresses at write time and never re-validated
// afterwards.
type Pincode struct {
	Code     string
	Division string
	Region   string
	Circle   string
	State    string
}

// Resolver looks up enrichment fields for a postal code. The code is matched
// exactly as supplied, with no trimming or zero-padding.
type Resolver interface {
	Resolve(ctx context.Context, code string) (*Pincode, error)
}
