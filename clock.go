package ledger

// Clock provides the ledger sequence number. Values returned by a clock
// must never decrease. It is not a wall clock.
type Clock interface {
	Now() uint64
}

// FixedClock is a Clock that always returns the same sequence number.
type FixedClock uint64

var _ Clock = FixedClock(0)

// Now implements Clock.
func (c FixedClock) Now() uint64 {
	return uint64(c)
}

// IsExpired returns true if the expiration sequence is reached, meaning
// that now is equal or greater than the expiration.
func IsExpired(now, expiration uint64) bool {
	return now >= expiration
}

// IsPastExpiration returns true only if the expiration sequence is in the
// past. Unlike IsExpired, reaching the expiration does not count.
func IsPastExpiration(now, expiration uint64) bool {
	return now > expiration
}
