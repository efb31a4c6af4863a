package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	passwordLen  = 10
	symbols      = "!@#$%&*"
	upperLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	lowerLetters = "abcdefghijkmnopqrstuvwxyz"
	digits       = "23456789"
)

// GenerateAdminPassword returns a random password used when LOGIN is not configured.
// It holds at least one upper, lower, digit and symbol; look-alike characters are left out.
// Do not log the returned string.
func GenerateAdminPassword() (string, error) {
	pick := func(s string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(s))))
		if err != nil {
			return 0, err
		}
		return s[n.Int64()], nil
	}
	result := make([]byte, passwordLen)
	all := upperLetters + lowerLetters + digits + symbols
	for i, set := range []string{upperLetters, lowerLetters, digits, symbols} {
		c, err := pick(set)
		if err != nil {
			return "", err
		}
		result[i] = c
	}
	for i := 4; i < passwordLen; i++ {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		result[i] = c
	}
	// Fisher-Yates with crypto/rand so the required classes are not always first.
	for i := passwordLen - 1; i >= 1; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("shuffle: %w", err)
		}
		j := int(n.Int64())
		result[i], result[j] = result[j], result[i]
	}
	return string(result), nil
}
