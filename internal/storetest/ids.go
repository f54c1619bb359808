package storetest

import "github.com/google/uuid"

// ID derives a stable UUID from a fixture name, so tests keep readable names
// while ids stay valid for validation.
func ID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
