package domain

import (
	"net/mail"
	"regexp"
	"slices"
	"strings"
)

// Address grammar: a dot-atom local part over the ASCII atext set, then at
// least two domain labels. Labels are alphanumeric with interior hyphens and
// the last one must start and end with a letter. This is the ASCII subset of
// what the Trip Service's email format accepts.
const (
	emailAtom  = "[A-Za-z0-9!#$%&'*+/=?^_`{|}~-]+"
	emailLabel = `[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?`
	emailTLD   = `[A-Za-z]([A-Za-z0-9-]*[A-Za-z])?`
)

var emailPattern = regexp.MustCompile(
	`^` + emailAtom + `(\.` + emailAtom + `)*@(` + emailLabel + `\.)+` + emailTLD + `$`,
)

// ValidateEmail reports whether s is a bare address the roster and the
// Trip Service both accept. s must also parse as a single RFC 5322 address
// that round-trips unchanged, so comments, display names and quoting are
// rejected.
func ValidateEmail(s string) bool {
	if !emailPattern.MatchString(s) {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Name == "" && addr.Address == s
}

// NormalizeEmail trims surrounding whitespace and lower-cases s.
// Callers normalize before Add and Remove so the roster compares addresses
// case-insensitively in practice.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Roster is the ordered list of invitee emails. Insertion order is kept for
// display and for the create-trip payload. Methods never mutate the receiver.
type Roster []string

// Add returns a new roster with email appended.
// Returns ErrInvalidEmail if email fails ValidateEmail and ErrDuplicateEmail
// if an equal entry is already present.
func (r Roster) Add(email string) (Roster, error) {
	if !ValidateEmail(email) {
		return r, ErrInvalidEmail
	}
	if r.Contains(email) {
		return r, ErrDuplicateEmail
	}
	out := make(Roster, 0, len(r)+1)
	out = append(out, r...)
	return append(out, email), nil
}

// Remove returns a new roster without any entry equal to email.
// Removing an absent email is a no-op.
func (r Roster) Remove(email string) Roster {
	out := make(Roster, 0, len(r))
	for _, e := range r {
		if e != email {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether email is already on the roster.
func (r Roster) Contains(email string) bool {
	return slices.Contains(r, email)
}

// List returns the roster as a plain, never-nil slice.
func (r Roster) List() []string {
	out := make([]string, len(r))
	copy(out, r)
	return out
}
