package team

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// inviteAlphabet is uppercase base36, so codes read as 0-9A-Z.
const inviteAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// InviteCodeLength is the fixed length of team invite codes.
const InviteCodeLength = 6

// NewInviteCode generates a random 6-character uppercase base36 code.
// Uniqueness is not guaranteed by construction; the store's unique
// constraint is the actual guarantee and creation retries on collision.
func NewInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generating invite code: %w", err)
		}
		code[i] = inviteAlphabet[n.Int64()]
	}
	return string(code), nil
}
