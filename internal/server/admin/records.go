package admin

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/resumebook/internal/server/models"
)

var validate = validator.New()

// Record is one entry of an import file. Resume names a local PDF, relative
// to the import's résumé directory, to upload; ResumeKey points at an object
// already in the bucket. Either one marks the registration as having a résumé.
type Record struct {
	UserID              string `json:"userId" validate:"required"`
	Name                string `json:"name"`
	Major               string `json:"major"`
	Graduation          Year   `json:"graduation" validate:"omitempty,len=4,numeric"`
	University          string `json:"university"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	Resume              string `json:"resume,omitempty"`
	ResumeKey           string `json:"resumeKey,omitempty" validate:"excluded_with=Resume"`
}

// Year accepts a graduation year as a JSON string or number.
type Year string

func (y *Year) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*y = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("graduation must be a year: %w", err)
	}
	*y = Year(strconv.FormatInt(n, 10))
	return nil
}

// ReadRecords decodes a JSON array of records.
func ReadRecords(r io.Reader) ([]Record, error) {
	var recs []Record
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	for i, rec := range recs {
		if err := validate.Struct(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return recs, nil
}

func (r Record) toModel(key string) *models.Registration {
	return &models.Registration{
		UserID:              r.UserID,
		Name:                r.Name,
		Major:               r.Major,
		Graduation:          string(r.Graduation),
		University:          r.University,
		DietaryRestrictions: r.DietaryRestrictions,
		HasResume:           key != "",
		ResumeKey:           key,
	}
}
