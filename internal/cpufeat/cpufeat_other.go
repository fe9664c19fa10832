//go:build !amd64 || noasm

package cpufeat

import "runtime"

const staticCX16 = false

// probe reports nothing: without the amd64 instruction sequences
// there is no native backend to enable.
func probe() Record {
	return Record{Vendor: runtime.GOARCH}
}
