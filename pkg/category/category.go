package category

// Category is a spending category used for the needs breakdown, distinct from
// tags. Pinned categories sort before unpinned ones.
type Category struct {
	ID       string
	Name     string
	IsPinned bool
	Count    int
}
