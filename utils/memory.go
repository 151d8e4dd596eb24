package utils

import (
	"fmt"
	"sync"
	"unsafe"
)

// CacheLineSize is the alignment of every block handed out by MemoryManager.
const CacheLineSize = 64

// Allocator provides raw backing storage for lookup tables. Every block
// obtained from Allocate must be handed back to Release exactly once.
type Allocator interface {
	Allocate(nBytes int) []byte
	Release(b []byte)
}

// MemoryManager is a cache line aligned Allocator that keeps released
// blocks, keyed by size, for reuse by later requests of the same size.
type MemoryManager struct {
	mu sync.Mutex

	used   map[uintptr][]byte
	cached map[int][][]byte
	cache  bool

	NAlloc      int // Number of allocations that reached the runtime
	NReused     int // Number of allocations served from the cache
	UsedBytes   int
	CachedBytes int
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{
		used:   make(map[uintptr][]byte),
		cached: make(map[int][][]byte),
		cache:  true,
	}
}

func (mm *MemoryManager) EnableCache() {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.cache = true
}

// DisableCache turns caching off and drops every cached block.
func (mm *MemoryManager) DisableCache() {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.cache = false
	mm.cached = make(map[int][][]byte)
	mm.CachedBytes = 0
}

func (mm *MemoryManager) Allocate(nBytes int) (b []byte) {
	if nBytes <= 0 {
		return nil
	}
	mm.mu.Lock()
	defer mm.mu.Unlock()
	if list := mm.cached[nBytes]; mm.cache && len(list) > 0 {
		b = list[len(list)-1]
		mm.cached[nBytes] = list[:len(list)-1]
		mm.CachedBytes -= nBytes
		mm.NReused++
		clear(b)
	} else {
		b = allocAligned(nBytes, CacheLineSize)
		mm.NAlloc++
	}
	mm.used[addrOf(b)] = b
	mm.UsedBytes += nBytes
	return
}

func (mm *MemoryManager) Release(b []byte) {
	if len(b) == 0 {
		return
	}
	mm.mu.Lock()
	defer mm.mu.Unlock()
	addr := addrOf(b)
	blk, ok := mm.used[addr]
	if !ok {
		panic(fmt.Sprintf("releasing block %#x not obtained from this manager", addr))
	}
	delete(mm.used, addr)
	mm.UsedBytes -= len(blk)
	if mm.cache {
		mm.cached[len(blk)] = append(mm.cached[len(blk)], blk)
		mm.CachedBytes += len(blk)
	}
}

// ReleaseAll forgets every block in use and every cached block.
func (mm *MemoryManager) ReleaseAll() {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.used = make(map[uintptr][]byte)
	mm.cached = make(map[int][][]byte)
	mm.UsedBytes, mm.CachedBytes = 0, 0
}

func (mm *MemoryManager) InUse() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return len(mm.used)
}

func (mm *MemoryManager) String() string {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return fmt.Sprintf("allocations = %d reused = %d used = %d B cached = %d B",
		mm.NAlloc, mm.NReused, mm.UsedBytes, mm.CachedBytes)
}

// Provide returns a zeroed slice of n elements backed by memory from a.
// A nil Allocator falls back to make. T must not contain pointers.
func Provide[T any](a Allocator, n int) []T {
	if n <= 0 {
		return nil
	}
	if a == nil {
		return make([]T, n)
	}
	var zero T
	b := a.Allocate(n * int(unsafe.Sizeof(zero)))
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// Release hands back to a a slice obtained from Provide with the same
// Allocator.
func Release[T any](a Allocator, s []T) {
	if a == nil || len(s) == 0 {
		return
	}
	var zero T
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
	a.Release(b)
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(&b[0]))
}

// allocAligned over-allocates and returns the aligned window. The window
// keeps the whole backing array alive.
func allocAligned(size, alignment int) []byte {
	raw := make([]byte, size+alignment-1)
	addr := uintptr(unsafe.Pointer(&raw[0]))
	offset := int((addr+uintptr(alignment-1))&^uintptr(alignment-1) - addr)
	return raw[offset : offset+size : offset+size]
}
