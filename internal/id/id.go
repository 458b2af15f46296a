// Package id generates identifiers for lists, SSE clients, and users.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated identifiers.
const (
	PrefixList = "list"
	PrefixSSE  = "sse"
	PrefixUser = "user"
)

// userNamespace scopes deterministic user ids to this application.
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://cinelist.app/users"))

// Generate creates a prefixed NanoID, e.g. "list-V1StGXR8_Z5jdHi6B-myT".
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	nid, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + nid, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// ForEmail derives a stable user id from an email address.
// The mocked login has no account table, so the same email must always map to the same profile.
func ForEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	return PrefixUser + "-" + uuid.NewSHA1(userNamespace, []byte(normalized)).String()
}
