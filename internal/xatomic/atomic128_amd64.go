//go:build amd64 && !noasm

package xatomic

// Every function below executes LOCK CMPXCHG16B (or VMOVDQA) on *addr.
// CMPXCHG16B is always sequentially consistent, so no ordering argument is
// taken. Callers must have confirmed CMPXCHG16B support (and AVX plus a
// vendor guarantee for the Vec functions) before calling.

// CompareAndSwap executes a single CMPXCHG16B.
// prev is the value found in *addr, ok reports whether new was written.
//
//go:noescape
func CompareAndSwap(addr *Pair, old, new Pair) (prev Pair, ok bool)

// LoadCAS loads *addr by comparing it with zero and swapping in zero,
// which never changes memory. *addr must be writable.
//
//go:noescape
func LoadCAS(addr *Pair) Pair

// LoadVec atomically loads *addr with VMOVDQA.
//
//go:noescape
func LoadVec(addr *Pair) Pair

// StoreVec atomically stores v to *addr with VMOVDQA.
// x86 stores already have release semantics, it serves Relaxed and Release.
//
//go:noescape
func StoreVec(addr *Pair, v Pair)

// StoreVecSeqCst is StoreVec followed by MFENCE.
//
//go:noescape
func StoreVecSeqCst(addr *Pair, v Pair)

// Swap stores v and returns the previous value.
//
//go:noescape
func Swap(addr *Pair, v Pair) Pair

// The read-modify-write functions below run the whole retry loop in
// assembly and return the previous value. The first read is two plain
// MOVs, which may tear; CMPXCHG16B then fails and hands back the real
// current value.

//go:noescape
func Add(addr *Pair, v Pair) Pair

//go:noescape
func Sub(addr *Pair, v Pair) Pair

//go:noescape
func And(addr *Pair, v Pair) Pair

//go:noescape
func Nand(addr *Pair, v Pair) Pair

//go:noescape
func Or(addr *Pair, v Pair) Pair

//go:noescape
func Xor(addr *Pair, v Pair) Pair

//go:noescape
func Not(addr *Pair) Pair

//go:noescape
func Neg(addr *Pair) Pair

// Max and Min compare as signed.
//
//go:noescape
func Max(addr *Pair, v Pair) Pair

//go:noescape
func Min(addr *Pair, v Pair) Pair

// UMax and UMin compare as unsigned.
//
//go:noescape
func UMax(addr *Pair, v Pair) Pair

//go:noescape
func UMin(addr *Pair, v Pair) Pair
