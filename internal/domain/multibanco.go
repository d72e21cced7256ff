package domain

import "fmt"

// MultibancoReference formats the 9-digit ATM reference for a donation:
// 7 digits from a monotonically assigned sequence number plus 2 mod-97 check
// digits over entity+reference, so the pair is verifiable at reconciliation
// time and references stay distinct until the sequence wraps at ten million.
func MultibancoReference(entity string, seq uint64) string {
	base := seq % 10_000_000

	var entityNum uint64
	for _, r := range entity {
		if r < '0' || r > '9' {
			continue
		}
		entityNum = entityNum*10 + uint64(r-'0')
	}
	// entity(5) + base(7) + "00" fits in uint64
	check := 98 - ((entityNum*1_000_000_000 + base*100) % 97)
	return fmt.Sprintf("%07d%02d", base, check)
}
