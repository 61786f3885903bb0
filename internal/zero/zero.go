// Package zero provides helpers to clear sensitive key material from
// memory.  The compiler is free to optimize away writes to dead memory,
// so these are best effort, not a guarantee.
package zero

// Bytes sets every byte of the slice to zero.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// Bytea32 sets every byte of the 32-byte array to zero.
func Bytea32(b *[32]byte) {
	*b = [32]byte{}
}
