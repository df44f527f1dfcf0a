package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CouponCodeLength is the length of the random suffix on coupon codes.
const CouponCodeLength = 10

// GenerateCouponCode builds a coupon code like RESGATE-PONTOS-X7K2M9QW4T.
// Uniqueness is enforced by the database index on the coupon table; the
// caller retries on a collision.
func GenerateCouponCode(rewardType string) (string, error) {
	suffix := make([]byte, CouponCodeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		suffix[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("RESGATE-%s-%s", strings.ToUpper(rewardType), string(suffix)), nil
}
