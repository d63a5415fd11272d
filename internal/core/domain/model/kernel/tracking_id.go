package kernel

import (
	"fmt"
	"math/bits"

	"marketplace/internal/pkg/errs"
)

const (
	// TrackingIDLength is the number of symbols in every tracking id.
	TrackingIDLength = 21
	// trackingIDAlphabet holds the 36 accepted symbols.
	trackingIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var (
	// ErrTrackingIDSeedIsRequired is returned for an empty seed.
	ErrTrackingIDSeedIsRequired = errs.NewValueIsRequiredError("tracking id seed")
	// ErrTrackingIDSeedIsUnusable is returned when no seed byte maps into the alphabet.
	ErrTrackingIDSeedIsUnusable = errs.NewValueIsInvalidErrorWithCause(
		"tracking id seed", fmt.Errorf("no byte maps into the %d symbol alphabet", len(trackingIDAlphabet)))
)

// trackingIDMask is next_power_of_two(len(alphabet)) - 1.
var trackingIDMask = byte(1<<bits.Len(uint(len(trackingIDAlphabet)-1)) - 1)

// TrackingID is the human-readable identifier shared by an order and its
// sample or analysis record.
type TrackingID string

// GenerateTrackingID maps seed bytes onto the alphabet by rejection sampling.
// Each byte is masked with 63; values below 36 select a symbol, the rest are
// skipped. The seed is read cyclically until 21 symbols are accepted, so the
// result depends only on the seed.
func GenerateTrackingID(seed []byte) (TrackingID, error) {
	if len(seed) == 0 {
		return "", ErrTrackingIDSeedIsRequired
	}
	if !hasAcceptedByte(seed) {
		return "", ErrTrackingIDSeedIsUnusable
	}

	out := make([]byte, 0, TrackingIDLength)
	for i := 0; len(out) < TrackingIDLength; i++ {
		idx := seed[i%len(seed)] & trackingIDMask
		if int(idx) < len(trackingIDAlphabet) {
			out = append(out, trackingIDAlphabet[idx])
		}
	}

	return TrackingID(out), nil
}

func hasAcceptedByte(seed []byte) bool {
	for _, b := range seed {
		if int(b&trackingIDMask) < len(trackingIDAlphabet) {
			return true
		}
	}
	return false
}

// TrackingIDFromString validates an externally supplied id.
func TrackingIDFromString(s string) (TrackingID, error) {
	id := TrackingID(s)
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func (t TrackingID) Validate() error {
	if len(t) != TrackingIDLength {
		return errs.NewValueIsOutOfRangeError("tracking id length", len(t), TrackingIDLength, TrackingIDLength)
	}
	for i := 0; i < len(t); i++ {
		if !isAlphabetSymbol(t[i]) {
			return errs.NewValueIsInvalidErrorWithCause("tracking id", fmt.Errorf("symbol %q at %d", t[i], i))
		}
	}
	return nil
}

func isAlphabetSymbol(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}

func (t TrackingID) String() string {
	return string(t)
}
