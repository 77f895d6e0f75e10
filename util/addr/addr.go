// Package addr shortens account identifiers for display.
package addr

// shortenThreshold is the length above which addresses get elided.
const shortenThreshold = 20

// Shorten elides the middle of a long address, keeping the first 11 and the
// last 4 characters. Addresses of 20 characters or fewer pass through
// unchanged, so the function is idempotent.
func Shorten(address string) string {
	if len(address) <= shortenThreshold {
		return address
	}

	return address[:11] + "…" + address[len(address)-4:]
}
