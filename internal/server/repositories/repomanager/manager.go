package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/resumebook/internal/dbx"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/registrations"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Registrations(db dbx.DBTX) registrations.Repository
}
