package keyfile

import "runtime"

// Zeroize overwrites a byte slice with zeros to clear sensitive data from
// memory. Go's garbage collector does not guarantee immediate collection,
// so explicit zeroization ensures secrets are cleared as soon as they are
// no longer needed.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b) // Prevent dead code elimination
}
