// Copyright (C) 2012 by Nick Craig-Wood http://www.craig-wood.com/nick/
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package xbytes finds and makes aligned memory for 16-byte atomic cells.
package xbytes

import "unsafe"

// CellAlign is the alignment CMPXCHG16B and VMOVDQA require.
const CellAlign = 16

// Misalignment returns p's offset from the previous multiple of align
// (must be power of two).
func Misalignment(p unsafe.Pointer, align uintptr) uintptr {
	return uintptr(p) & (align - 1)
}

// IsAligned reports whether p is CellAlign aligned.
func IsAligned(p unsafe.Pointer) bool {
	return Misalignment(p, CellAlign) == 0
}

// Window returns the 16-byte aligned half of buf.
//
// buf must be 8-byte aligned, so out of three words either [0:2] or
// [1:3] starts on a 16-byte boundary. Go only guarantees that for
// uint64 arrays on 64-bit platforms; 32-bit callers need an
// atomic.Uint64-aligned holder.
// The choice depends only on buf's address modulo 16. Heap objects
// don't move, and stack copies keep addresses modulo the stack size.
func Window(buf *[3]uint64) unsafe.Pointer {
	p := unsafe.Pointer(&buf[0])
	if IsAligned(p) {
		return p
	}
	return unsafe.Pointer(&buf[1])
}

// MakeAlignedBlock returns []byte of size blockSize aligned to a multiple
// of alignSize in memory (must be power of two).
func MakeAlignedBlock(blockSize, alignSize int) []byte {
	block := make([]byte, blockSize+alignSize)
	if alignSize == 0 {
		return block
	}
	a := Misalignment(unsafe.Pointer(&block[0]), uintptr(alignSize))
	offset := 0
	if a != 0 {
		offset = alignSize - int(a)
	}
	block = block[offset : offset+blockSize]
	// Can't check alignment of a zero sized block.
	if blockSize != 0 && Misalignment(unsafe.Pointer(&block[0]), uintptr(alignSize)) != 0 {
		panic("failed to align block")
	}
	return block
}
