//go:build amd64 && !noasm

package cpufeat

import (
	"github.com/klauspost/cpuid/v2"
	"github.com/templexxx/cpu"

	"github.com/templexxx/atomic128/internal/xatomic"
)

const staticCX16 = xatomic.StaticCX16

func probe() Record {
	r := Record{
		Vendor:    cpuid.CPU.VendorID.String(),
		Signature: cpu.X86.Signature,
	}

	if !staticCX16 && !cpuid.CPU.Supports(cpuid.CX16) {
		return r
	}
	r.CMPXCHG16B = true

	// VMOVDQA is atomic on Intel and AMD CPUs with AVX.
	// See https://gcc.gnu.org/bugzilla/show_bug.cgi?id=104688 for details.
	// Hygon shares AMD's core design.
	if !cpu.X86.HasAVX {
		return r
	}
	switch cpuid.CPU.VendorID {
	case cpuid.Intel, cpuid.AMD, cpuid.Hygon:
		r.VMOVDQAAtomic = true
	}
	return r
}
