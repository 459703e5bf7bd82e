package firefox

import "time"

// Firefox records a private-browsing visit with this visit_type.
const visitTypePrivate = 7

// Visit is one normalized history visit read from places.sqlite. Visits are
// produced fresh on every read and never persisted by daybook.
type Visit struct {
	URL        string
	Title      string
	Domain     string
	VisitCount int
	VisitTime  time.Time
	VisitType  int
	FromVisit  int64
}

// Site is one entry of the most-visited listing.
type Site struct {
	URL        string
	Title      string
	Domain     string
	VisitCount int
	LastVisit  time.Time
}

// Bookmark is one Firefox bookmark joined to its place record.
type Bookmark struct {
	Title        string
	URL          string
	Domain       string
	DateAdded    time.Time
	LastModified time.Time
}
