package receipts

import (
	"context"
	"sort"
	"sync"

	"github.com/dmitrijs2005/lamportvault/internal/common"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
)

// MemoryRepository keeps receipts in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	ids      map[string]struct{}
	bySigner map[string][]models.Receipt
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		ids:      make(map[string]struct{}),
		bySigner: make(map[string][]models.Receipt),
	}
}

func (r *MemoryRepository) Create(ctx context.Context, rc *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[rc.ID]; ok {
		return common.ErrorAlreadyExists
	}
	r.ids[rc.ID] = struct{}{}
	r.bySigner[rc.Signer] = append(r.bySigner[rc.Signer], *rc)
	return nil
}

func (r *MemoryRepository) ListBySigner(ctx context.Context, signer string, limit int) ([]*models.Receipt, error) {
	r.mu.RLock()
	list := make([]models.Receipt, len(r.bySigner[signer]))
	copy(list, r.bySigner[signer])
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	limit = normalizeLimit(limit)
	if len(list) > limit {
		list = list[:limit]
	}
	result := make([]*models.Receipt, len(list))
	for i := range list {
		result[i] = &list[i]
	}
	return result, nil
}
