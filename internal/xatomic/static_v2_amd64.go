//go:build amd64 && amd64.v2 && !noasm

package xatomic

// StaticCX16 reports that CMPXCHG16B is guaranteed at build time.
// x86-64-v2 (GOAMD64=v2 and above) includes CMPXCHG16B.
const StaticCX16 = true
