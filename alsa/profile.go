package alsa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zynthbox/a2jmidi/seq"
)

// PortProfile is the structured search profile produced by parsing a port
// designation string.
//
// A profile either carries a non-nil Err (in which case no other field besides
// Caps is meaningful) or describes a valid designation with FirstName always
// populated.
type PortProfile struct {
	// Err is non-nil when the designation failed the grammar.
	Err error
	// Caps are the capabilities a candidate port must fulfill.
	Caps seq.PortCaps
	// HasColon indicates the designation had two parts separated by a colon.
	HasColon bool
	// FirstName is the normalized part before the colon, or the entire
	// normalized designation when there was no colon.
	FirstName string
	// SecondName is the normalized part after the colon. Empty when there was
	// no colon.
	SecondName string
	// FirstInt is the numeric interpretation of the first part, or seq.NullID
	// when the part is not a pure integer.
	FirstInt int
	// SecondInt is the numeric interpretation of the second part, or seq.NullID.
	SecondInt int
}

// ParseDesignation turns a user-supplied port designation into a PortProfile.
//
// The grammar accepts exactly one of:
//
//	"<A>"     - a single token, no colon
//	"<A>:<B>" - exactly two non-empty tokens separated by one colon
//
// Anything else yields a profile flagged with ErrInvalidDesignation. Each token
// is normalized independently (whitespace stripped, everything outside
// [A-Za-z0-9] folded to '_') and additionally tested for a pure-integer
// interpretation.
func ParseDesignation(caps seq.PortCaps, designation string) PortProfile {
	profile := PortProfile{
		Caps:      caps,
		FirstInt:  seq.NullID,
		SecondInt: seq.NullID,
	}

	if designation == "" {
		profile.Err = fmt.Errorf("%w: designation is empty", ErrInvalidDesignation)
		return profile
	}

	parts := strings.Split(designation, ":")
	switch len(parts) {
	case 1:
		profile.FirstName = normalizeIdentifier(parts[0])
		profile.FirstInt = identifierToInt(profile.FirstName)

	case 2:
		if parts[0] == "" || parts[1] == "" {
			profile.Err = fmt.Errorf("%w: %q has an empty part", ErrInvalidDesignation, designation)
			return profile
		}
		profile.HasColon = true
		profile.FirstName = normalizeIdentifier(parts[0])
		profile.SecondName = normalizeIdentifier(parts[1])
		profile.FirstInt = identifierToInt(profile.FirstName)
		profile.SecondInt = identifierToInt(profile.SecondName)

	default:
		profile.Err = fmt.Errorf("%w: %q has more than one colon", ErrInvalidDesignation, designation)
	}

	return profile
}

// normalizeIdentifier strips all whitespace from the identifier and folds every
// remaining byte outside [A-Za-z0-9] to '_'. The fold is byte-wise, so one
// multi-byte character yields several underscores.
func normalizeIdentifier(identifier string) string {
	var b strings.Builder
	b.Grow(len(identifier))
	for i := 0; i < len(identifier); i++ {
		c := identifier[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\v' || c == '\f' || c == '\r':
			// drop whitespace
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9'):
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}

	return b.String()
}

// identifierToInt returns the pure-integer interpretation of the identifier,
// tolerating surrounding whitespace, or seq.NullID when there is none.
func identifierToInt(identifier string) int {
	n, err := strconv.Atoi(strings.TrimSpace(identifier))
	if err != nil {
		return seq.NullID
	}

	return n
}
