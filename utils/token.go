package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken produces a short verification code for MFA and
// password reset emails.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			token[i] = tokenCharset[0]
			continue
		}
		token[i] = tokenCharset[n.Int64()]
	}
	return string(token)
}
