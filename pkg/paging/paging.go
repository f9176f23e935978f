// Package paging implements offset pagination against a server-reported
// total. Each browse surface owns one Controller; the people and projects
// tabs keep independent instances so switching tabs never loses position.
package paging

// Controller tracks the current page of one paginated collection. The page
// size is fixed at construction. Use New; the zero value has size 0 and
// clamps everything to page 0.
type Controller struct {
	size  int
	page  int
	total int
}

// New returns a controller for the given page size. Sizes below 1 are
// raised to 1.
func New(size int) *Controller {
	if size < 1 {
		size = 1
	}
	return &Controller{size: size}
}

// Size returns the fixed page size.
func (c *Controller) Size() int { return c.size }

// Page returns the current zero-indexed page.
func (c *Controller) Page() int { return c.page }

// Total returns the last reconciled total.
func (c *Controller) Total() int { return c.total }

// Offset returns the item offset of the current page: page times size.
func (c *Controller) Offset() int { return c.page * c.size }

// MaxPage returns the highest navigable page: ceil(total/size)-1, floored
// at 0 so an empty collection still has page 0.
func (c *Controller) MaxPage() int {
	if c.total <= 0 || c.size < 1 {
		return 0
	}
	return (c.total+c.size-1)/c.size - 1
}

// SetTotal reconciles the authoritative total reported by the data source
// and clamps the current page back into range if the collection shrank.
func (c *Controller) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	c.total = total
	if c.page > c.MaxPage() {
		c.page = c.MaxPage()
	}
}

// SetPage moves to the requested page, clamped into [0, MaxPage].
func (c *Controller) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	if max := c.MaxPage(); page > max {
		page = max
	}
	c.page = page
}

// Reset returns to page 0. Called on every filter change, including
// debounced search commits.
func (c *Controller) Reset() { c.page = 0 }

// CanNext reports whether a later page exists.
func (c *Controller) CanNext() bool { return c.page < c.MaxPage() }

// CanPrev reports whether an earlier page exists.
func (c *Controller) CanPrev() bool { return c.page > 0 }

// Next advances one page if possible and reports whether it moved.
func (c *Controller) Next() bool {
	if !c.CanNext() {
		return false
	}
	c.page++
	return true
}

// Prev steps back one page if possible and reports whether it moved.
func (c *Controller) Prev() bool {
	if !c.CanPrev() {
		return false
	}
	c.page--
	return true
}

// Window copies the requested page out of items. Pages past the end and
// nonsense arguments return nil rather than panicking, so data sources can
// pass client-supplied paging straight through.
func Window[T any](items []T, page, size int) []T {
	if page < 0 || size < 1 {
		return nil
	}
	start := page * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
