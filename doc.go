/*
Package btindex implements an in-memory ordered index as a classic B-tree.

B-Trees

A B-tree of order m keeps up to m sorted (key, value) entries per node. Inner
nodes with n entries carry n+1 children, and the keys of child i lie strictly
between the node's entries i-1 and i. Every node except the root holds at
least ⌊m/2⌋ entries, and all leaves sit at the same depth. Unlike a B+ tree,
values live in inner nodes as well as in leaves: each key is stored exactly
once, wherever it happens to be.

Insertion places a new entry into a leaf. If the leaf overflows, it is split
around its median entry, which is promoted into the parent. Splits may
cascade up to the root; a split root is the only way the tree grows in
height.

Deletion of an entry in an inner node replaces it by its in-order predecessor,
which always lives in a leaf. A leaf (or, after a merge, an inner node) falling
below minimum occupancy borrows an entry from a sibling by rotation through
the parent, or is merged with a sibling together with the separating parent
entry. Merges may cascade up to the root; a root left without entries is
replaced by its single child.

Usage

	tree, err := btindex.New[int, string](4)
	if err != nil {
	    …
	}
	tree.Insert(42, "answer")
	v, ok := tree.Search(42)     // "answer", true
	removed := tree.Delete(42)   // true

Trees are not safe for concurrent use. Clients with concurrent access have to
protect a tree with a lock of their own.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2026, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package btindex

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// assert panics if condition does not hold. It guards against tree corruption
// caused by bugs in this package, never against client input.
func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
