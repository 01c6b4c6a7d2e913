package contact

import (
	"context"
	"crypto/md5"
	"strings"

	"github.com/oklog/ulid/v2"

	"tableflip.dev/ringo/pkg/phone"
)

// CurrentSchema tags contacts written by this version of the book format.
const CurrentSchema = "v1"

// Contact is one entry of the contact book.
type Contact struct {
	Schema       string   `json:"schema,omitempty" yaml:"schema,omitempty"`
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	PhoneNumbers []string `json:"phoneNumbers" yaml:"phoneNumbers"`
}

// Owns reports whether the number belongs to this contact, matching any of
// the contact's numbers by normalized key or suffix.
func (c Contact) Owns(number string) bool {
	for _, n := range c.PhoneNumbers {
		if phone.SameLine(n, number) {
			return true
		}
	}
	return false
}

// Source supplies the contact book.
type Source interface {
	List(ctx context.Context) ([]Contact, error)
}

// Static is a fixed in-memory contact book, for tests and the component
// testbed.
type Static []Contact

func (s Static) List(ctx context.Context) ([]Contact, error) {
	return s, nil
}

// ByID finds a contact by exact id.
func ByID(contacts []Contact, id string) (Contact, bool) {
	for _, c := range contacts {
		if c.ID == id {
			return c, true
		}
	}
	return Contact{}, false
}

// ByNumber finds the first contact owning the number.
func ByNumber(contacts []Contact, number string) (Contact, bool) {
	for _, c := range contacts {
		if c.Owns(number) {
			return c, true
		}
	}
	return Contact{}, false
}

// Find resolves a user-supplied reference against the book: an exact id, a
// case-insensitive name, or any phone number the contact owns.
func Find(contacts []Contact, ref string) (Contact, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Contact{}, false
	}
	if c, ok := ByID(contacts, ref); ok {
		return c, true
	}
	for _, c := range contacts {
		if strings.EqualFold(c.Name, ref) {
			return c, true
		}
	}
	return ByNumber(contacts, ref)
}

// MintID derives a stable id for a contact that arrived without one. The id
// is a valid ULID built from a digest of the contact's content, so repeated
// loads of the same book agree on ids without writing anything back.
func MintID(c Contact) string {
	seed := strings.ToLower(strings.TrimSpace(c.Name)) + "\x00" + strings.Join(c.PhoneNumbers, "\x00")
	digest := md5.Sum([]byte(seed))
	var u ulid.ULID
	copy(u[:], digest[:])
	return u.String()
}
