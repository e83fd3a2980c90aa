// Package book is the view model of the Resume Book: the full résumé set,
// the filtered subset, the selection and the presentation flags. Every
// user action maps onto one explicit state transition.
package book

import "github.com/dmitrijs2005/resumebook/internal/client/models"

// Apply returns the résumés matching f, in input order. With no filter set
// it returns a copy of all.
func Apply(all []models.Resume, f models.Filter) []models.Resume {
	out := make([]models.Resume, 0, len(all))
	for _, r := range all {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
