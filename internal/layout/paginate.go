package layout

// Page is one logical page: the slice of records sharing a grid. It is
// rendered twice, once per side.
type Page[T any] struct {
	Index  int
	Offset int // global index of Items[0]
	Items  []T
}

// PageCount returns ceil(ceil(n/columns)/rows), which equals
// ceil(n/PageSize). A full last page never produces an empty trailer.
func PageCount(n int, c Capacity) int {
	if n <= 0 || c.Columns <= 0 || c.Rows <= 0 {
		return 0
	}
	rows := ceilDiv(n, c.Columns)
	return ceilDiv(rows, c.Rows)
}

// Paginate slices items into contiguous pages of at most c.PageSize items,
// preserving order.
func Paginate[T any](items []T, c Capacity) []Page[T] {
	count := PageCount(len(items), c)
	size := c.PageSize()
	pages := make([]Page[T], 0, count)
	for p := 0; p < count; p++ {
		lo := p * size
		hi := min(lo+size, len(items))
		pages = append(pages, Page[T]{Index: p, Offset: lo, Items: items[lo:hi:hi]})
	}
	return pages
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
