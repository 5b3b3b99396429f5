package search

import "strconv"

// Marker is one entry of a pagination window: either a page number or a
// non-interactive gap.
type Marker struct {
	Page     int
	Ellipsis bool
}

func (m Marker) String() string {
	if m.Ellipsis {
		return "…"
	}
	return strconv.Itoa(m.Page)
}

// Window compresses the pages 1..totalPages around currentPage. The first and
// last pages are always present, the neighbours of currentPage are shown, and
// each skipped run collapses into a single ellipsis.
//
//	Window(5, 10) => 1 … 4 5 6 … 10
//	Window(1, 2)  => 1 2
func Window(currentPage, totalPages int) []Marker {
	if totalPages <= 1 {
		return []Marker{{Page: 1}}
	}
	currentPage = min(max(currentPage, 1), totalPages)

	rangeStart := max(2, currentPage-1)
	rangeEnd := min(totalPages-1, currentPage+1)

	markers := make([]Marker, 0, 7)
	markers = append(markers, Marker{Page: 1})
	if rangeStart > 2 {
		markers = append(markers, Marker{Ellipsis: true})
	}
	for p := rangeStart; p <= rangeEnd; p++ {
		markers = append(markers, Marker{Page: p})
	}
	if rangeEnd < totalPages-1 {
		markers = append(markers, Marker{Ellipsis: true})
	}
	return append(markers, Marker{Page: totalPages})
}

// HasPrev reports whether a previous page exists.
func HasPrev(page int) bool {
	return page > 1
}

// HasNext reports whether a page after page exists.
func HasNext(page, totalPages int) bool {
	return page < totalPages
}
