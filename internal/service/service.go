package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"jub/client/client"
	"jub/client/dto"

	log "github.com/sirupsen/logrus"
)

// Service seeds a remote observatory from local catalog definition files:
// every JSON file in the configured directory becomes one catalog, and a
// fresh observatory is linked to all of them in file order.
type Service struct {
	client           client.JubClient
	catalogDir       string
	observatoryTitle string
}

func NewService(jubClient client.JubClient, catalogDir, observatoryTitle string) *Service {
	return &Service{
		client:           jubClient,
		catalogDir:       catalogDir,
		observatoryTitle: observatoryTitle,
	}
}

// SeedObservatory loads the catalog files, creates each catalog remotely and
// registers them on a newly created observatory.
func (s *Service) SeedObservatory(ctx context.Context) error {
	catalogs, err := s.loadCatalogs()
	if err != nil {
		return err
	}
	if len(catalogs) == 0 {
		return fmt.Errorf("no catalog files found in %s", s.catalogDir)
	}

	refs := make([]dto.LevelRef, 0, len(catalogs))
	for i, catalog := range catalogs {
		res := s.client.CreateCatalog(ctx, catalog)
		if !res.IsOk() {
			return fmt.Errorf("failed to create catalog %q: %w", catalog.DisplayName, res.UnwrapErr())
		}
		cid := res.Unwrap()
		refs = append(refs, dto.LevelRef{Level: i, CID: cid})
		log.Infof("Created catalog %s (%s)", catalog.DisplayName, cid)
	}

	observatory := dto.NewObservatory("", s.observatoryTitle, "", "", nil)
	obRes := s.client.CreateObservatory(ctx, observatory)
	if !obRes.IsOk() {
		return fmt.Errorf("failed to create observatory: %w", obRes.UnwrapErr())
	}
	obid := obRes.Unwrap()

	if res := s.client.UpdateObservatoryCatalogs(ctx, obid, refs); !res.IsOk() {
		return fmt.Errorf("failed to link catalogs to observatory %s: %w", obid, res.UnwrapErr())
	}

	log.Infof("Seeded observatory %s with %d catalogs", obid, len(refs))
	return nil
}

func (s *Service) loadCatalogs() ([]*dto.Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(s.catalogDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog files in %s: %w", s.catalogDir, err)
	}
	sort.Strings(paths)

	catalogs := make([]*dto.Catalog, 0, len(paths))
	for _, path := range paths {
		catalog, err := dto.CatalogFromFile(path)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, catalog)
	}
	return catalogs, nil
}
