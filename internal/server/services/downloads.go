package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/resumebook/internal/common"
	"github.com/dmitrijs2005/resumebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/resumebook/internal/server/storage"
)

type DownloadService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	presigner   storage.Presigner
}

func NewDownloadService(db *sql.DB, m repomanager.RepositoryManager, p storage.Presigner) *DownloadService {
	return &DownloadService{db: db, repomanager: m, presigner: p}
}

// Resolve presigns a download URL for each user's résumé, in the order the
// IDs were given. Duplicates and users without a résumé are skipped; when
// nothing is left common.ErrorNotFound is returned.
func (s *DownloadService) Resolve(ctx context.Context, userIDs []string) ([]string, error) {
	ids := dedupe(userIDs)
	if len(ids) == 0 {
		return nil, common.ErrorNotFound
	}

	objects, err := s.repomanager.Registrations(s.db).ResumeKeys(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error looking up resumes: %w", err)
	}

	urls := make([]string, 0, len(objects))
	for _, id := range ids {
		obj, ok := objects[id]
		if !ok {
			continue
		}
		u, err := s.presigner.PresignGet(ctx, obj.Key, storage.ResumeFilename(obj.Name))
		if err != nil {
			return nil, fmt.Errorf("error presigning %s: %w", obj.Key, err)
		}
		urls = append(urls, u)
	}

	if len(urls) == 0 {
		return nil, common.ErrorNotFound
	}
	return urls, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
