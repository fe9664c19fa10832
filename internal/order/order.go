// Package order provides memory orderings and the rules for combining them.
package order

import "fmt"

// Ordering is the memory ordering requested for an atomic operation.
//
// The zero value is invalid, so a forgotten ordering is caught
// rather than silently treated as Relaxed.
type Ordering uint8

const (
	_ Ordering = iota
	Relaxed
	Acquire
	Release
	AcqRel
	SeqCst
)

func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "Relaxed"
	case Acquire:
		return "Acquire"
	case Release:
		return "Release"
	case AcqRel:
		return "AcqRel"
	case SeqCst:
		return "SeqCst"
	}
	return fmt.Sprintf("Ordering(%d)", uint8(o))
}

// Valid reports whether o is one of the five orderings.
func (o Ordering) Valid() bool {
	return o >= Relaxed && o <= SeqCst
}

// StrongestFailure returns the strongest ordering a failed
// compare-and-swap may use when the operation was requested with o.
// A failed CAS publishes nothing, so the release half is dropped.
func StrongestFailure(o Ordering) Ordering {
	switch o {
	case Relaxed, Release:
		return Relaxed
	case Acquire, AcqRel:
		return Acquire
	case SeqCst:
		return SeqCst
	}
	panic(fmt.Sprintf("atomic128: invalid ordering %s", o))
}

// UpgradeSuccess returns a success ordering that is at least as strong
// as failure, for hardware which applies one ordering to both outcomes.
func UpgradeSuccess(success, failure Ordering) Ordering {
	switch failure {
	case Relaxed:
		return success
	case Acquire:
		switch success {
		case Relaxed:
			return Acquire
		case Release:
			return AcqRel
		}
		return success
	case SeqCst:
		return SeqCst
	}
	panic(fmt.Sprintf("atomic128: invalid failure ordering %s", failure))
}

// AssertLoad panics if o can't be used by a load.
func AssertLoad(o Ordering) {
	switch o {
	case Relaxed, Acquire, SeqCst:
		return
	case Release:
		panic("atomic128: there is no such thing as a release load")
	case AcqRel:
		panic("atomic128: there is no such thing as an acquire-release load")
	}
	panic(fmt.Sprintf("atomic128: invalid ordering %s", o))
}

// AssertStore panics if o can't be used by a store.
func AssertStore(o Ordering) {
	switch o {
	case Relaxed, Release, SeqCst:
		return
	case Acquire:
		panic("atomic128: there is no such thing as an acquire store")
	case AcqRel:
		panic("atomic128: there is no such thing as an acquire-release store")
	}
	panic(fmt.Sprintf("atomic128: invalid ordering %s", o))
}

// AssertRMW panics if o is not a valid ordering.
func AssertRMW(o Ordering) {
	if !o.Valid() {
		panic(fmt.Sprintf("atomic128: invalid ordering %s", o))
	}
}

// AssertCompareExchange panics if the success/failure pair is not
// one of the 5x3 valid combinations.
func AssertCompareExchange(success, failure Ordering) {
	AssertRMW(success)
	switch failure {
	case Relaxed, Acquire, SeqCst:
		return
	case Release:
		panic("atomic128: there is no such thing as a release failure ordering")
	case AcqRel:
		panic("atomic128: there is no such thing as an acquire-release failure ordering")
	}
	panic(fmt.Sprintf("atomic128: invalid failure ordering %s", failure))
}
