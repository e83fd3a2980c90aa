package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/resumebook/internal/common"
	"github.com/dmitrijs2005/resumebook/internal/dbx"
	"github.com/dmitrijs2005/resumebook/internal/server/models"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/repomanager"
)

// Field names of a registration on the wire.
const (
	FieldUserID              = "userId"
	FieldName                = "name"
	FieldMajor               = "major"
	FieldGraduation          = "graduation"
	FieldUniversity          = "university"
	FieldDietaryRestrictions = "dietaryRestrictions"
	FieldHasResume           = "hasResume"
)

var allFields = []string{
	FieldUserID,
	FieldName,
	FieldMajor,
	FieldGraduation,
	FieldUniversity,
	FieldDietaryRestrictions,
	FieldHasResume,
}

type RegistrationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRegistrationService(db *sql.DB, m repomanager.RepositoryManager) *RegistrationService {
	return &RegistrationService{db: db, repomanager: m}
}

// Filter lists registrations matching filter and returns each one as a
// document holding only the projected fields. userId is always present.
// An empty projection selects every field.
func (s *RegistrationService) Filter(ctx context.Context, filter map[string]any, projection []map[string]int) ([]map[string]any, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	fields, err := parseProjection(projection)
	if err != nil {
		return nil, err
	}

	regs, err := s.repomanager.Registrations(s.db).Filter(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("error filtering registrations: %w", err)
	}

	out := make([]map[string]any, 0, len(regs))
	for _, r := range regs {
		out = append(out, project(r, fields))
	}
	return out, nil
}

// Import upserts all registrations in one transaction.
func (s *RegistrationService) Import(ctx context.Context, regs []*models.Registration) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Registrations(tx)
		for _, r := range regs {
			if r.UserID == "" {
				return fmt.Errorf("%w: registration without user id", common.ErrBadRequest)
			}
			if err := repo.Upsert(ctx, r); err != nil {
				return fmt.Errorf("error importing %s: %w", r.UserID, err)
			}
		}
		return nil
	})
}

func parseFilter(m map[string]any) (models.RegistrationFilter, error) {
	var f models.RegistrationFilter
	for k, v := range m {
		switch k {
		case FieldHasResume:
			b, ok := v.(bool)
			if !ok {
				return f, fmt.Errorf("%w: %s must be a boolean", common.ErrBadRequest, k)
			}
			f.HasResume = &b
		case FieldMajor:
			s, err := filterString(k, v)
			if err != nil {
				return f, err
			}
			f.Major = s
		case FieldGraduation:
			s, err := filterString(k, v)
			if err != nil {
				return f, err
			}
			f.Graduation = s
		case FieldUniversity:
			s, err := filterString(k, v)
			if err != nil {
				return f, err
			}
			f.University = s
		default:
			return f, fmt.Errorf("%w: unsupported filter key %q", common.ErrBadRequest, k)
		}
	}
	return f, nil
}

// filterString accepts strings, and numbers for graduation years sent
// unquoted.
func filterString(key string, v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string", common.ErrBadRequest, key)
	}
}

func parseProjection(p []map[string]int) ([]string, error) {
	if len(p) == 0 {
		return allFields, nil
	}

	want := map[string]bool{FieldUserID: true}
	for _, item := range p {
		for k, v := range item {
			if !isField(k) {
				return nil, fmt.Errorf("%w: unknown projection field %q", common.ErrBadRequest, k)
			}
			if v != 0 {
				want[k] = true
			}
		}
	}

	fields := make([]string, 0, len(want))
	for _, f := range allFields {
		if want[f] {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

func isField(name string) bool {
	for _, f := range allFields {
		if f == name {
			return true
		}
	}
	return false
}

func project(r *models.Registration, fields []string) map[string]any {
	doc := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f {
		case FieldUserID:
			doc[f] = r.UserID
		case FieldName:
			doc[f] = r.Name
		case FieldMajor:
			doc[f] = r.Major
		case FieldGraduation:
			doc[f] = r.Graduation
		case FieldUniversity:
			doc[f] = r.University
		case FieldDietaryRestrictions:
			doc[f] = r.DietaryRestrictions
		case FieldHasResume:
			doc[f] = r.HasResume
		}
	}
	return doc
}
