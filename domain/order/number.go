package order

import (
	"fmt"
	"sync/atomic"
	"time"
)

var numberSeq uint64

// NextNumber generates an order number: an ORD prefix, a second-resolution
// timestamp, and a process-monotonic counter so two orders created within the
// same second still get distinct numbers.
func NextNumber(now time.Time) string {
	seq := atomic.AddUint64(&numberSeq, 1)
	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102150405"), seq%10000)
}
