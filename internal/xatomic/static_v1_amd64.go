//go:build amd64 && !amd64.v2 && !noasm

package xatomic

// StaticCX16 reports that CMPXCHG16B is guaranteed at build time.
// GOAMD64=v1 doesn't promise it, so it must be detected at run time.
const StaticCX16 = false
