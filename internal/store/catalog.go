package store

import (
	"context"
	"fmt"
	"time"

	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"
	"github.com/dormdex/dormdex-server/internal/domain"
)

// CatalogRecord is a parsed catalog with its provenance.
type CatalogRecord struct {
	RunID     string         `json:"run_id"`
	Subreddit string         `json:"subreddit"`
	ParsedAt  time.Time      `json:"parsed_at"`
	Catalog   domain.Catalog `json:"catalog"`
}

// SaveCatalog stores a parsed catalog and indexes each hall result for
// direct lookup. Uses a write batch since a catalog spans many keys.
func (s *Store) SaveCatalog(ctx context.Context, rec *CatalogRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	key := []byte(catalogPrefix + rec.Subreddit)
	if err := batch.Set(key, data); err != nil {
		return fmt.Errorf("batch set catalog: %w", err)
	}

	for _, result := range rec.Catalog {
		hallData, err := json.Marshal(result)
		if err != nil {
			return fmt.Errorf("marshal hall %s: %w", result.Hall, err)
		}
		hallKey := []byte(hallPrefix + rec.Subreddit + ":" + string(result.Hall))
		if err := batch.Set(hallKey, hallData); err != nil {
			return fmt.Errorf("batch set hall %s: %w", result.Hall, err)
		}
	}

	if err := batch.Flush(); err != nil {
		return fmt.Errorf("flush catalog batch: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("catalog saved",
			"subreddit", rec.Subreddit,
			"halls", len(rec.Catalog),
			"assets", rec.Catalog.AssetCount(),
		)
	}
	return nil
}

// GetCatalog retrieves the stored catalog for a subreddit.
func (s *Store) GetCatalog(ctx context.Context, subreddit string) (*CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec CatalogRecord
	err := s.getJSON([]byte(catalogPrefix+subreddit), func(val []byte) error {
		return json.Unmarshal(val, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetHallResult retrieves one hall's result for a subreddit. Halls with
// no assets are never stored, so absence means "no entry".
func (s *Store) GetHallResult(ctx context.Context, subreddit string, hall domain.Hall) (*domain.HallResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result domain.HallResult
	err := s.getJSON([]byte(hallPrefix+subreddit+":"+string(hall)), func(val []byte) error {
		return json.Unmarshal(val, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteCatalog removes a stored catalog and its hall index entries.
// Used when re-parsing so stale halls do not linger.
func (s *Store) DeleteCatalog(ctx context.Context, subreddit string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete([]byte(catalogPrefix + subreddit)); err != nil {
			return err
		}
		for _, hall := range domain.AllHalls() {
			key := []byte(hallPrefix + subreddit + ":" + string(hall))
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
