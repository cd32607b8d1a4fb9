package pagination

import "strconv"

// Page describes one fixed-size window over an ordered collection.
// Numbers are 1-based.
type Page struct {
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
}

// Request parses a raw page query parameter. Absent, non-numeric or
// out-of-range values default to page 1.
func Request(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate resolves a requested page number against the collection size.
// A number past the last page clamps to the last page, so the result is
// never empty unless the collection itself is empty.
func Paginate(total int64, size, number int) Page {
	if size < 1 {
		size = 1
	}
	if number < 1 {
		number = 1
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	if number > totalPages {
		number = totalPages
	}

	return Page{
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

// Offset returns the item offset of the page within the collection
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// HasNext reports whether a later page exists
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether an earlier page exists
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// NextNumber returns the following page number, clamped to the last page
func (p Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

// PrevNumber returns the preceding page number, clamped to the first page
func (p Page) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}
