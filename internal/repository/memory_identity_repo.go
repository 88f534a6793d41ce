package repository

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/emolens/internal/model"
)

// MemoryIdentityRepo はプロセス内メモリで保持するIdentityリポジトリ。
// デモ用のモックユーザーテーブルに相当し、永続化は行わない。
type MemoryIdentityRepo struct {
	mu         sync.RWMutex
	identities map[string]*model.Identity // email -> Identity
}

// NewMemoryIdentityRepo はシードユーザー入りのMemoryIdentityRepoを生成する。
// 一般ユーザー（user@example.com）と管理者（admin@example.com）をあらかじめ登録する。
func NewMemoryIdentityRepo() *MemoryIdentityRepo {
	now := time.Now()
	return &MemoryIdentityRepo{
		identities: map[string]*model.Identity{
			"user@example.com": {
				ID:        "1",
				Email:     "user@example.com",
				IsAdmin:   false,
				CreatedAt: now,
			},
			"admin@example.com": {
				ID:        "2",
				Email:     "admin@example.com",
				IsAdmin:   true,
				CreatedAt: now,
			},
		},
	}
}

// FindByEmail はメールアドレスの完全一致でIdentityを検索する。見つからない場合はnilを返す。
func (r *MemoryIdentityRepo) FindByEmail(_ context.Context, email string) (*model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	identity, ok := r.identities[email]
	if !ok {
		return nil, nil
	}

	// 内部状態を呼び出し側に共有しないようコピーを返す
	copied := *identity
	return &copied, nil
}

// Create はIdentityをテーブルに登録する。
func (r *MemoryIdentityRepo) Create(_ context.Context, identity *model.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *identity
	r.identities[identity.Email] = &copied
	return nil
}

// compile-time interface check
var _ IdentityRepository = (*MemoryIdentityRepo)(nil)
