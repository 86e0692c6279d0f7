package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const ReferralCodePrefix = "FOOD"

// GenerateReferralCode returns the prefix followed by a random number in [1000, 9999].
func GenerateReferralCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", ReferralCodePrefix, n.Int64()+1000), nil
}
