// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package image

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cznic/exp/calculus/heap"
)

func buildSampleHeap(t *testing.T) (*heap.Heap, heap.Loc) {
	h := heap.NewHeap(heap.Options{MaxArity: 8})
	lam, err := h.Alloc(2)
	require.NoError(t, err)
	h.Link(lam+1, heap.MakeLink(heap.VAR, 0, 0, lam))

	dead, err := h.Alloc(2)
	require.NoError(t, err)
	h.Clear(dead, 2)

	host, err := h.Alloc(1)
	require.NoError(t, err)
	h.Link(host, heap.MakeLink(heap.LAM, 0, 0, lam))
	return h, host
}

func TestSaveLoadRoundTripRaw(t *testing.T) {
	h, root := buildSampleHeap(t)
	f := NewMemFiler()
	require.NoError(t, Save(f, h, root, false))

	h2, root2, err := Load(f)
	require.NoError(t, err)
	require.Equal(t, root, root2)
	require.Equal(t, h.MaxArity(), h2.MaxArity())
	require.Equal(t, h.Deref(root), h2.Deref(root))
	require.Len(t, h2.FreeList(2), len(h.FreeList(2)))
}

func TestSaveLoadRoundTripCompressed(t *testing.T) {
	h, root := buildSampleHeap(t)
	f := NewMemFiler()
	require.NoError(t, Save(f, h, root, true))
	require.Equal(t, formatSnappy, f.Bytes()[0])

	h2, root2, err := Load(f)
	require.NoError(t, err)
	require.Equal(t, root, root2)
	require.Equal(t, h.Deref(root), h2.Deref(root))
}

func TestLoadRejectsUnknownFormatTag(t *testing.T) {
	f := NewMemFiler()
	_, err := f.WriteAt([]byte{0xff, 0x00}, 0)
	require.NoError(t, err)

	_, _, err = Load(f)
	require.Error(t, err)
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	_, _, err := Load(NewMemFiler())
	require.Error(t, err)
}
