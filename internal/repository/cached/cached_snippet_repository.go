// Package cached provides a caching wrapper over a primary snippet repository
// using Redis. Only anonymous-safe reads are cached: single lookups by uid and
// public listing pages. Owner listings always hit the primary store.
package cached

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/internal/repository"
)

// key helpers
func keySnippet(uid string) string { return "snippet:" + uid }
func keyPublicList(q string, page, limit int) string {
	return fmt.Sprintf("snippets:pub:p%d:l%d:q:%s", page, limit, q)
}

// publicPage is the cached shape of one public listing page.
type publicPage struct {
	Items []domain.Snippet `json:"items"`
	Total int              `json:"total"`
}

// SnippetRepository is a cache-aside repository combining Redis with a primary store.
type SnippetRepository struct {
	primary repository.SnippetRepository
	redis   *redis.Client
	ttl     time.Duration
}

// NewSnippetRepository creates a new cached repository.
func NewSnippetRepository(primary repository.SnippetRepository, redis *redis.Client, ttl time.Duration) *SnippetRepository {
	return &SnippetRepository{primary: primary, redis: redis, ttl: ttl}
}

// Insert writes through to primary, caches the snippet, and busts listing pages.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) (domain.Snippet, error) {
	stored, err := r.primary.Insert(ctx, s)
	if err != nil {
		return domain.Snippet{}, err
	}
	data, _ := json.Marshal(stored)
	_ = r.redis.Set(ctx, keySnippet(stored.UID), data, r.ttl).Err()
	_ = r.invalidatePublicPages(ctx)
	return stored, nil
}

// FindByUID attempts Redis then falls back to primary.
func (r *SnippetRepository) FindByUID(ctx context.Context, uid string) (domain.Snippet, error) {
	val, err := r.redis.Get(ctx, keySnippet(uid)).Result()
	if err == nil && val != "" {
		var s domain.Snippet
		if jsonErr := json.Unmarshal([]byte(val), &s); jsonErr == nil {
			return s, nil
		}
	}
	s, err := r.primary.FindByUID(ctx, uid)
	if err != nil {
		return domain.Snippet{}, err
	}
	data, _ := json.Marshal(s)
	_ = r.redis.Set(ctx, keySnippet(s.UID), data, r.ttl).Err()
	return s, nil
}

// UIDExists always consults the primary store: the generator's collision check
// must not trust a cache.
func (r *SnippetRepository) UIDExists(ctx context.Context, uid string) (bool, error) {
	return r.primary.UIDExists(ctx, uid)
}

// ListMine is never cached; it depends on the requester's identity.
func (r *SnippetRepository) ListMine(ctx context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error) {
	return r.primary.ListMine(ctx, userID, q, page, limit)
}

// ListPublic caches page results keyed by query/page/limit.
func (r *SnippetRepository) ListPublic(ctx context.Context, q string, page, limit int) ([]domain.Snippet, int, error) {
	k := keyPublicList(q, page, limit)
	if val, err := r.redis.Get(ctx, k).Result(); err == nil && val != "" {
		var pg publicPage
		if jsonErr := json.Unmarshal([]byte(val), &pg); jsonErr == nil {
			return pg.Items, pg.Total, nil
		}
	}
	items, total, err := r.primary.ListPublic(ctx, q, page, limit)
	if err != nil {
		return nil, 0, err
	}
	data, _ := json.Marshal(publicPage{Items: items, Total: total})
	_ = r.redis.Set(ctx, k, data, r.ttl).Err()
	return items, total, nil
}

// Update writes through and evicts the snippet plus listing pages.
func (r *SnippetRepository) Update(ctx context.Context, uid string, patch domain.SnippetPatch) error {
	if err := r.primary.Update(ctx, uid, patch); err != nil {
		return err
	}
	_ = r.redis.Del(ctx, keySnippet(uid)).Err()
	_ = r.invalidatePublicPages(ctx)
	return nil
}

// Delete writes through and evicts the snippet plus listing pages.
func (r *SnippetRepository) Delete(ctx context.Context, uid string) error {
	if err := r.primary.Delete(ctx, uid); err != nil {
		return err
	}
	_ = r.redis.Del(ctx, keySnippet(uid)).Err()
	_ = r.invalidatePublicPages(ctx)
	return nil
}

func (r *SnippetRepository) invalidatePublicPages(ctx context.Context) error {
	// scan-and-delete keys with the public listing prefix
	var cursor uint64
	for {
		keys, next, err := r.redis.Scan(ctx, cursor, "snippets:pub:*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			listKeys := make([]string, 0, len(keys))
			for _, k := range keys {
				if strings.HasPrefix(k, "snippets:pub:") {
					listKeys = append(listKeys, k)
				}
			}
			if len(listKeys) > 0 {
				_ = r.redis.Del(ctx, listKeys...).Err()
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return nil
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
