package utils

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestMemoryManager(t *testing.T) {
	mm := NewMemoryManager()
	{ // Aligned blocks
		for _, n := range []int{1, 7, 64, 1000} {
			b := mm.Allocate(n)
			assert.Len(t, b, n)
			assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&b[0]))%CacheLineSize)
			mm.Release(b)
		}
		assert.Equal(t, 0, mm.InUse())
		assert.Nil(t, mm.Allocate(0))
	}
	{ // Released blocks are reused and cleared
		a := Provide[int64](mm, 16)
		a[3] = 42
		Release(mm, a)
		reused := mm.NReused
		b := Provide[int64](mm, 16)
		assert.Equal(t, reused+1, mm.NReused)
		assert.Equal(t, int64(0), b[3])
		assert.Equal(t, 1, mm.InUse())
		assert.Equal(t, 128, mm.UsedBytes)
		cached := mm.CachedBytes
		Release(mm, b)
		assert.Equal(t, cached+128, mm.CachedBytes)
	}
	{ // Without cache every request reaches the runtime
		mm.DisableCache()
		assert.Equal(t, 0, mm.CachedBytes)
		nAlloc := mm.NAlloc
		Release(mm, Provide[int32](mm, 8))
		Release(mm, Provide[int32](mm, 8))
		assert.Equal(t, nAlloc+2, mm.NAlloc)
		mm.EnableCache()
	}
	{ // Foreign blocks are rejected
		assert.Panics(t, func() { mm.Release(make([]byte, 8)) })
		_ = mm.Allocate(8)
		mm.ReleaseAll()
		assert.Equal(t, 0, mm.InUse())
		assert.Contains(t, mm.String(), "used = 0 B")
	}
	{ // A nil Allocator falls back to the runtime
		s := Provide[uint16](nil, 5)
		assert.Len(t, s, 5)
		Release[uint16](nil, s)
		assert.Nil(t, Provide[int](mm, 0))
	}
}
