package utils

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// PartitionMap splits the index range [0, MaxIndex) into ParallelDegree
// contiguous buckets. Bucket sizes differ by at most one.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end (exclusive) of each bucket
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		panic(fmt.Sprintf("parallel degree must be positive, have %d", ParallelDegree))
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Split1D returns the bucket owned by a worker. The remainder of the
// division is spread over the first buckets, one item each.
func (pm *PartitionMap) Split1D(worker int) (bucket [2]int) {
	var (
		nPart     = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
		extra     int
		shift     = remainder
	)
	if worker < remainder {
		shift, extra = worker, 1
	}
	bucket[0] = worker*nPart + shift
	bucket[1] = bucket[0] + nPart + extra
	return
}

// GetBucket returns the bucket holding index k and its range, bucketNum is
// -1 when k is outside [0, MaxIndex).
func (pm *PartitionMap) GetBucket(k int) (bucketNum, min, max int) {
	_, bucketNum, min, max = pm.getBucketWithTryCount(k)
	return
}

func (pm *PartitionMap) getBucketWithTryCount(k int) (tryCount, bucketNum, min, max int) {
	if k < 0 || k >= pm.MaxIndex {
		return 0, -1, 0, 0
	}
	// The guess is exact up to the remainder spread, off by one at most
	bucketNum = int(int64(pm.ParallelDegree) * int64(k) / int64(pm.MaxIndex))
	for !(pm.Partitions[bucketNum][0] <= k && pm.Partitions[bucketNum][1] > k) {
		if pm.Partitions[bucketNum][0] > k {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum == -1 || bucketNum == pm.ParallelDegree {
			return 0, -1, 0, 0
		}
		tryCount++
	}
	min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) int {
	kMin, kMax := pm.GetBucketRange(bucketNum)
	return kMax - kMin
}

// DefaultWorkers is the worker count used when a caller asks for zero or
// fewer workers.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ParallelFor splits [0, n) over the workers and calls f once per non empty
// bucket, concurrently. Each call owns a disjoint range, so f may write the
// slots of its range without synchronization. The first error returned by
// any worker is returned after all of them complete.
func ParallelFor(workers, n int, f func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		return f(0, n)
	}
	var (
		pm = NewPartitionMap(workers, n)
		g  errgroup.Group
	)
	for bn := 0; bn < pm.ParallelDegree; bn++ {
		lo, hi := pm.GetBucketRange(bn)
		if lo == hi {
			continue
		}
		g.Go(func() error { return f(lo, hi) })
	}
	return g.Wait()
}
