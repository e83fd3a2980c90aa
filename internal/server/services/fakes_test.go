package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/resumebook/internal/dbx"
	"github.com/dmitrijs2005/resumebook/internal/server/models"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/registrations"
)

type fakeRegistrationsRepo struct {
	filterOut []*models.Registration
	filterErr error
	gotFilter models.RegistrationFilter

	keysOut map[string]*models.ResumeObject
	keysErr error
	gotIDs  []string

	upsertErr    error
	upsertFailOn string
	upserted     []string
}

func (f *fakeRegistrationsRepo) Filter(ctx context.Context, rf models.RegistrationFilter) ([]*models.Registration, error) {
	f.gotFilter = rf
	return f.filterOut, f.filterErr
}

func (f *fakeRegistrationsRepo) ResumeKeys(ctx context.Context, ids []string) (map[string]*models.ResumeObject, error) {
	f.gotIDs = append([]string(nil), ids...)
	return f.keysOut, f.keysErr
}

func (f *fakeRegistrationsRepo) Upsert(ctx context.Context, r *models.Registration) error {
	if f.upsertFailOn == r.UserID {
		return f.upsertErr
	}
	f.upserted = append(f.upserted, r.UserID)
	return nil
}

type fakeRepoManager struct {
	repo   *fakeRegistrationsRepo
	gotDBs []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Registrations(db dbx.DBTX) registrations.Repository {
	m.gotDBs = append(m.gotDBs, db)
	return m.repo
}

type presignCall struct {
	key, filename string
}

type fakePresigner struct {
	calls  []presignCall
	err    error
	failOn string
}

func (p *fakePresigner) PresignGet(ctx context.Context, key, filename string) (string, error) {
	if p.err != nil && (p.failOn == "" || p.failOn == key) {
		return "", p.err
	}
	p.calls = append(p.calls, presignCall{key, filename})
	return "https://store.example/" + key + "?sig=1", nil
}

func (p *fakePresigner) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	return "https://store.example/" + key + "?put=1", nil
}
