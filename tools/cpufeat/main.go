// cpufeat is a tool to print the 128-bit atomic capabilities of this
// machine and the backend atomic128 picks for it.

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/templexxx/cpu"

	"github.com/templexxx/atomic128"
	"github.com/templexxx/atomic128/internal/cpufeat"
)

var (
	verbose = flag.Bool("v", false, "print raw cpuid details")
)

func main() {
	flag.Parse()

	r := cpufeat.Detect()

	fmt.Printf("arch: %s, cpu: %s\n", runtime.GOARCH, cpuid.CPU.BrandName)
	fmt.Printf("features: %s\n", r)
	if v := os.Getenv(cpufeat.DisableEnv); v != "" {
		fmt.Printf("%s=%s\n", cpufeat.DisableEnv, v)
	}
	fmt.Printf("backend: %s, lock_free: %t, always_lock_free: %t\n",
		atomic128.Backend(), atomic128.IsLockFree(), atomic128.IsAlwaysLockFree)

	if *verbose {
		fmt.Printf("vendor_id: %s, family: %d, model: %d, stepping: %d\n",
			cpuid.CPU.VendorString, cpuid.CPU.Family, cpuid.CPU.Model, cpu.X86.SteppingID)
		fmt.Printf("cx16: %t, avx: %t, avx2: %t, x86-64 level: %d\n",
			cpuid.CPU.Supports(cpuid.CX16), cpu.X86.HasAVX, cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.X64Level())
	}
}
