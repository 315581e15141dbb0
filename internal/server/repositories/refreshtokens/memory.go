package refreshtokens

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
)

// MemoryRepository keeps refresh tokens in process memory, keyed by digest
// like the postgres table. It backs the node when no DSN is configured.
type MemoryRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tokens: make(map[string]models.RefreshToken), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, t *models.RefreshToken) error {
	key := HashToken(t.Token)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[key]; ok {
		return common.ErrorAlreadyExists
	}
	r.tokens[key] = models.RefreshToken{Owner: t.Owner, Expires: t.Expires, CreatedAt: r.now()}
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[HashToken(token)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	t.Token = token
	return &t, nil
}

func (r *MemoryRepository) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, HashToken(token))
	return nil
}

func (r *MemoryRepository) DeleteExpired(_ context.Context, owner string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.tokens {
		if t.Owner == owner && t.Expires.Before(now) {
			delete(r.tokens, k)
			n++
		}
	}
	return n, nil
}
