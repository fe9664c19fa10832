// Package cpufeat detects the CPU features used by 128-bit atomics.
//
// The probe runs once, at first use, and the result is cached for the
// process lifetime. Concurrent first calls may probe redundantly; the
// hardware query is deterministic, so every caller sees the same Record.
package cpufeat

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
)

// DisableEnv lists features to treat as absent, comma separated.
// e.g. ATOMIC128_DISABLE=vmovdqa or ATOMIC128_DISABLE=cmpxchg16b,vmovdqa
//
// It's read once, at the first Detect. cmpxchg16b is ignored by builds
// that already require the instruction (GOAMD64=v2 and above).
const DisableEnv = "ATOMIC128_DISABLE"

const (
	featCMPXCHG16B = "cmpxchg16b"
	featVMOVDQA    = "vmovdqa"
)

// Record is the immutable result of a probe.
type Record struct {
	// CMPXCHG16B reports a 16-byte compare-and-swap instruction.
	CMPXCHG16B bool
	// VMOVDQAAtomic reports that aligned 16-byte vector loads/stores are
	// single-copy atomic. Only set when CMPXCHG16B is set too,
	// atomic and non-atomic strategies must never mix on one cell.
	VMOVDQAAtomic bool

	Vendor    string
	Signature string
}

func (r Record) String() string {
	return fmt.Sprintf("cmpxchg16b: %t, vmovdqa_atomic: %t, vendor: %s, signature: %s",
		r.CMPXCHG16B, r.VMOVDQAAtomic, r.Vendor, r.Signature)
}

var cached atomic.Pointer[Record]

// Detect returns the capability record, probing the CPU on first use.
func Detect() Record {
	if r := cached.Load(); r != nil {
		return *r
	}
	r := mask(probe(), os.Getenv(DisableEnv))
	cached.Store(&r)
	return r
}

// HasCMPXCHG16B is shorthand for Detect().CMPXCHG16B.
func HasCMPXCHG16B() bool {
	return Detect().CMPXCHG16B
}

// Force replaces the cached record. Tests only.
func Force(r Record) {
	r = mask(r, "")
	cached.Store(&r)
}

// Reset drops the cached record, the next Detect probes again. Tests only.
func Reset() {
	cached.Store(nil)
}

func mask(r Record, disabled string) Record {
	for _, f := range strings.Split(disabled, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case featCMPXCHG16B:
			if !staticCX16 {
				r.CMPXCHG16B = false
			}
		case featVMOVDQA:
			r.VMOVDQAAtomic = false
		}
	}
	if !r.CMPXCHG16B {
		r.VMOVDQAAtomic = false
	}
	return r
}
