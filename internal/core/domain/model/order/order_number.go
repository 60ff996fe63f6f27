package order

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// NewOrderNumber generates a human-readable order number from the current time
// plus a random suffix. Collisions are negligible and the orders table carries
// a unique index as the final guard.
func NewOrderNumber() string {
	return fmt.Sprintf("ORD-%d-%04d", time.Now().UnixMilli(), rand.IntN(10000))
}
