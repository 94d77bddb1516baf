/*
Package randx generates the random identifiers used across the service:
fixed-length base-36 room codes and UUID session/message IDs.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	// Base36Chars is the character set for room codes: digits plus uppercase letters.
	Base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// Base36Len is the size of the room code alphabet.
	Base36Len = int64(len(Base36Chars))

	// RoomCodeLength is the fixed length of a generated room code.
	RoomCodeLength = 6
)

// RoomCode generates an uppercase base-36 room code of RoomCodeLength
// characters using crypto/rand.
func RoomCode() (string, error) {
	result := make([]byte, RoomCodeLength)

	for i := range RoomCodeLength {
		num, err := rand.Int(rand.Reader, big.NewInt(Base36Len))
		if err != nil {
			return "", fmt.Errorf("failed to generate random number for room code: %v", err)
		}

		result[i] = Base36Chars[num.Int64()]
	}

	return string(result), nil
}

// SessionID generates a UUID v4 string identifying one client connection.
func SessionID() string {
	return uuid.New().String()
}

// IsValidRoomCode reports whether code has the room code length and alphabet.
func IsValidRoomCode(code string) bool {
	if len(code) != RoomCodeLength {
		return false
	}

	for _, char := range code {
		if !strings.ContainsRune(Base36Chars, char) {
			return false
		}
	}

	return true
}
