package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// guestTokenBytes is the entropy behind a guest access link.
const guestTokenBytes = 16

// GuestAccessPath returns a fresh, unguessable path under /g/ for a room's
// guest access URL.
func GuestAccessPath() (string, error) {
	b := make([]byte, guestTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "/g/" + hex.EncodeToString(b), nil
}
