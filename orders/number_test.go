package orders

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[A-Z0-9]{4}$`)

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	number := GenerateOrderNumber(now)
	assert.Regexp(t, orderNumberPattern, number)
	assert.Equal(t, "ORD-20260831-", number[:13])
}

func TestGenerateOrderNumberVaries(t *testing.T) {
	now := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[GenerateOrderNumber(now)] = true
	}
	// 36^4 suffixes, 50 draws colliding down to a handful would mean a
	// broken generator
	assert.Greater(t, len(seen), 45)
}
