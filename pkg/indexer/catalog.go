package indexer

import "iter"

// DefaultCatalogCapacity is an initial capacity of the Catalog created
// with non-positive capacity. It is large enough for typical small trees
// to never reallocate.
const DefaultCatalogCapacity = 512

// Catalog is an ordered collection of file paths discovered by a single
// traversal. Insertion order is preserved and reflects traversal order.
//
// Catalog is not safe for concurrent use: it has a single writer, the
// traversal that created it. Concurrent traversals must use separate
// catalogs combined with Merge afterwards.
type Catalog struct {
	entries []string
}

// NewCatalog returns empty Catalog with the given initial capacity.
// DefaultCatalogCapacity is used for non-positive values.
func NewCatalog(capacity int) *Catalog {
	if capacity <= 0 {
		capacity = DefaultCatalogCapacity
	}

	return &Catalog{
		entries: make([]string, 0, capacity),
	}
}

// Append adds path as the next entry. When the catalog is full its capacity
// is doubled, all previously appended entries are kept intact at their
// indices.
//
// Panics if path is empty.
func (c *Catalog) Append(path string) {
	if path == "" {
		panic("indexer: empty path appended to catalog")
	}

	if len(c.entries) == cap(c.entries) {
		c.grow()
	}

	c.entries = append(c.entries, path)
}

// grow doubles the capacity copying every stored entry.
func (c *Catalog) grow() {
	newCap := 2 * cap(c.entries)
	if newCap == 0 {
		newCap = DefaultCatalogCapacity
	}

	grown := make([]string, len(c.entries), newCap)
	copy(grown, c.entries)

	c.entries = grown
}

// Len returns number of appended entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Cap returns current capacity of the catalog.
func (c *Catalog) Cap() int {
	return cap(c.entries)
}

// At returns i-th entry. Panics if i is out of [0, Len()) range.
func (c *Catalog) At(i int) string {
	return c.entries[i]
}

// Entries returns iterator over indexed entries in append order. The
// iterator can be used several times, it does not modify the Catalog.
func (c *Catalog) Entries() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := range c.entries {
			if !yield(i, c.entries[i]) {
				return
			}
		}
	}
}

// All is like Entries but yields paths only.
func (c *Catalog) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := range c.entries {
			if !yield(c.entries[i]) {
				return
			}
		}
	}
}

// Slice returns a copy of all entries.
func (c *Catalog) Slice() []string {
	res := make([]string, len(c.entries))
	copy(res, c.entries)
	return res
}

// Merge appends all entries of other in their order.
func (c *Catalog) Merge(other *Catalog) {
	for _, p := range other.entries {
		c.Append(p)
	}
}

// Reset drops all entries keeping allocated capacity.
func (c *Catalog) Reset() {
	clear(c.entries)
	c.entries = c.entries[:0]
}
