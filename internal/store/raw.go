package store

import (
	"context"
	"fmt"
	"time"

	"encoding/json/v2"

	"github.com/dgraph-io/badger/v4"
	"github.com/dormdex/dormdex-server/internal/domain"
)

// RawSnapshot is one complete listing fetch, stored whole so submission
// order survives the round trip.
type RawSnapshot struct {
	RunID       string                 `json:"run_id"`
	Subreddit   string                 `json:"subreddit"`
	FetchedAt   time.Time              `json:"fetched_at"`
	Submissions []domain.RawSubmission `json:"submissions"`
}

// SaveRawSnapshot stores the latest listing fetch for a subreddit,
// replacing any previous snapshot.
func (s *Store) SaveRawSnapshot(ctx context.Context, snap *RawSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := []byte(rawPrefix + snap.Subreddit)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("raw snapshot saved",
			"subreddit", snap.Subreddit,
			"run_id", snap.RunID,
			"count", len(snap.Submissions),
		)
	}
	return nil
}

// GetRawSnapshot retrieves the latest listing fetch for a subreddit.
func (s *Store) GetRawSnapshot(ctx context.Context, subreddit string) (*RawSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap RawSnapshot
	err := s.getJSON([]byte(rawPrefix+subreddit), func(val []byte) error {
		return json.Unmarshal(val, &snap)
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
