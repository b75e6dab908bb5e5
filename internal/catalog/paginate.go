package catalog

// Page is one page of a filtered list.
type Page[T any] struct {
	Items     []T `json:"items"`
	Number    int `json:"page"`
	Size      int `json:"page_size"`
	PageCount int `json:"page_count"`
	Total     int `json:"total"`
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Number < p.PageCount }

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate slices items into the requested 1-indexed page.
//
// Out-of-range page numbers clamp to the first or last page. A non-positive
// size puts everything on one page. An empty list yields page 1 of 0.
func Paginate[T any](items []T, size, number int) Page[T] {
	total := len(items)
	if size <= 0 {
		size = total
	}

	count := 0
	if total > 0 {
		count = (total + size - 1) / size
	}

	if number > count {
		number = count
	}
	if number < 1 {
		number = 1
	}

	p := Page[T]{
		Number:    number,
		Size:      size,
		PageCount: count,
		Total:     total,
	}
	if total == 0 {
		p.Items = []T{}
		return p
	}

	start := (number - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	p.Items = items[start:end:end]
	return p
}
