//go:build !amd64 || noasm

package atomic128

import "github.com/templexxx/atomic128/internal/cpufeat"

const isAlwaysLockFree = false

// nativeBackendFor has nothing to offer without the amd64 assembly;
// everything runs on the lock table.
func nativeBackendFor(cpufeat.Record) *backend {
	return nil
}
