package profile

import (
	"hash/fnv"

	"github.com/RoaringBitmap/roaring/v2"
)

// DefaultDistinctLimit is the number of distinct values tracked exactly per
// column before the counter switches to hashed tracking.
const DefaultDistinctLimit = 100_000

// distinctCounter counts distinct strings exactly up to limit, then keeps
// 32-bit FNV-1a hashes in a roaring bitmap. Hash collisions can only
// undercount, so the result never exceeds the number of values added.
type distinctCounter struct {
	limit  int
	exact  map[string]struct{}
	hashed *roaring.Bitmap
}

func newDistinctCounter(limit int) *distinctCounter {
	if limit <= 0 {
		limit = DefaultDistinctLimit
	}
	return &distinctCounter{limit: limit, exact: make(map[string]struct{})}
}

// Add records v and reports whether it had not been seen before.
func (d *distinctCounter) Add(v string) bool {
	if d.hashed != nil {
		return d.hashed.CheckedAdd(hash32(v))
	}
	if _, ok := d.exact[v]; ok {
		return false
	}
	if len(d.exact) < d.limit {
		d.exact[v] = struct{}{}
		return true
	}
	d.hashed = roaring.New()
	for k := range d.exact {
		d.hashed.Add(hash32(k))
	}
	d.exact = nil
	return d.hashed.CheckedAdd(hash32(v))
}

func (d *distinctCounter) Count() int {
	if d.hashed != nil {
		return int(d.hashed.GetCardinality())
	}
	return len(d.exact)
}

// Approximate reports whether the counter has switched to hashing.
func (d *distinctCounter) Approximate() bool { return d.hashed != nil }

func hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
