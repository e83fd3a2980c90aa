// Package models defines the résumé records shown by the console and the
// wire shapes exchanged with the API.
package models

// PlaceholderImageURL is the thumbnail used for every résumé card.
const PlaceholderImageURL = "https://icons.veryicon.com/png/o/miscellaneous/general-icon-library/resume-7.png"

// Resume is one row of the book.
type Resume struct {
	ID             string
	Name           string
	ImageURL       string
	Major          string
	GraduationYear string
}

// Filter narrows the book. An empty field places no constraint.
type Filter struct {
	GraduationYear string
	Major          string
}

// IsZero reports whether no filter value is set.
func (f Filter) IsZero() bool {
	return f.GraduationYear == "" && f.Major == ""
}

// Match reports whether r satisfies every set filter value. Comparison is
// exact and case-sensitive.
func (f Filter) Match(r Resume) bool {
	if f.GraduationYear != "" && r.GraduationYear != f.GraduationYear {
		return false
	}
	if f.Major != "" && r.Major != f.Major {
		return false
	}
	return true
}

// ViewMode selects the presentation of the book.
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewGrid ViewMode = "grid"
)
