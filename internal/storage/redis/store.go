// Package redis stores saved games in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/config"
	"github.com/cory-johannsen/wildone/internal/game/save"
)

// Store keeps each save document under <prefix>save:<slot> and indexes the
// slots in the set <prefix>slots.
type Store struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

var _ save.Store = (*Store)(nil)

// NewStore connects a Store using cfg.
//
// Postcondition: the client is created lazily; call Ping to verify the server.
func NewStore(cfg config.RedisConfig, logger *zap.Logger) *Store {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewStoreWithClient(client, cfg.KeyPrefix, cfg.TTL, logger)
}

// NewStoreWithClient wraps an existing client.
func NewStoreWithClient(client *goredis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *Store) key(slot string) string { return s.prefix + "save:" + slot }

func (s *Store) index() string { return s.prefix + "slots" }

// Ping checks that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Save writes doc to slot and records the slot in the index.
func (s *Store) Save(ctx context.Context, slot string, doc *save.Document) error {
	if slot == "" {
		return errors.New("save slot must not be empty")
	}
	data, err := save.Encode(doc)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, s.key(slot), data, s.ttl)
		p.SAdd(ctx, s.index(), slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving slot %q: %w", slot, err)
	}
	s.logger.Debug("save written", zap.String("slot", slot), zap.Int("bytes", len(data)))
	return nil
}

// Load returns the document in slot.
//
// Postcondition: Returns an error wrapping save.ErrSaveFileNotFound when the
// key is absent or expired.
func (s *Store) Load(ctx context.Context, slot string) (*save.Document, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
		}
		return nil, fmt.Errorf("loading slot %q: %w", slot, err)
	}
	doc, err := save.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("slot %q: %w", slot, err)
	}
	return doc, nil
}

// Delete removes slot and its index entry.
func (s *Store) Delete(ctx context.Context, slot string) error {
	var del *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		del = p.Del(ctx, s.key(slot))
		p.SRem(ctx, s.index(), slot)
		return nil
	})
	if err != nil {
		return fmt.Errorf("deleting slot %q: %w", slot, err)
	}
	if del.Val() == 0 {
		return fmt.Errorf("slot %q: %w", slot, save.ErrSaveFileNotFound)
	}
	return nil
}

// List returns the indexed slots whose documents still exist, in ascending
// order. Index entries for expired documents are pruned.
func (s *Store) List(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.index()).Result()
	if err != nil {
		return nil, fmt.Errorf("listing saves: %w", err)
	}
	slots := make([]string, 0, len(members))
	for _, slot := range members {
		n, err := s.client.Exists(ctx, s.key(slot)).Result()
		if err != nil {
			return nil, fmt.Errorf("listing saves: %w", err)
		}
		if n == 0 {
			s.client.SRem(ctx, s.index(), slot)
			continue
		}
		slots = append(slots, slot)
	}
	slices.Sort(slots)
	return slots, nil
}

// Close releases the client.
func (s *Store) Close() error { return s.client.Close() }
