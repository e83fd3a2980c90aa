package registrations

import (
	"context"

	"github.com/dmitrijs2005/resumebook/internal/server/models"
)

type Repository interface {
	Filter(ctx context.Context, f models.RegistrationFilter) ([]*models.Registration, error)
	ResumeKeys(ctx context.Context, userIDs []string) (map[string]*models.ResumeObject, error)
	Upsert(ctx context.Context, r *models.Registration) error
}
