package common

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// MakeRandHexString returns n random bytes hex encoded.
func MakeRandHexString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateRandByteArray returns n random bytes. It panics if the system
// random source fails.
func GenerateRandByteArray(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray zeroes b in place.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// LoginChallenge is the message a wallet signs to prove key ownership at ts.
func LoginChallenge(ts time.Time) []byte {
	return []byte(LoginChallengePrefix + strconv.FormatInt(ts.Unix(), 10))
}
