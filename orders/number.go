package orders

import (
	"crypto/rand"
	"fmt"
	"time"
)

const numberAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateOrderNumber returns a fresh human-readable order number in the
// form ORD-YYYYMMDD-XXXX with a random base36 suffix. Uniqueness is enforced
// by the order_number index plus the retry loop in Create, not here.
func GenerateOrderNumber(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken
		panic(err)
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}
