package models

import (
	"encoding/json"
	"strconv"
)

// Registration is one element of the /registration/filter response. Only
// the fields the book needs are decoded; the backend may send more.
type Registration struct {
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Major      string     `json:"major"`
	Graduation Graduation `json:"graduation"`
}

// ToResume maps a registration onto a book row.
func (r Registration) ToResume() Resume {
	return Resume{
		ID:             r.UserID,
		Name:           r.Name,
		ImageURL:       PlaceholderImageURL,
		Major:          r.Major,
		GraduationYear: string(r.Graduation),
	}
}

// Graduation accepts the graduation year either as a JSON string or a
// number and keeps it as a string, since filters compare strings.
type Graduation string

func (g *Graduation) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*g = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*g = Graduation(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*g = Graduation(strconv.FormatInt(i, 10))
		return nil
	}
	*g = Graduation(n.String())
	return nil
}

// FilterRequest is the body of POST /registration/filter.
type FilterRequest struct {
	Filter     map[string]any   `json:"filter"`
	Projection []map[string]int `json:"projection"`
}

// ResumeFilterRequest returns the fixed request the book sends: every
// registration that has a résumé attached, with the fields below.
func ResumeFilterRequest() FilterRequest {
	return FilterRequest{
		Filter: map[string]any{"hasResume": true},
		Projection: []map[string]int{
			{"userId": 1},
			{"name": 1},
			{"major": 1},
			{"graduation": 1},
			{"university": 1},
			{"dietaryRestrictions": 1},
			{"hasResume": 1},
		},
	}
}
