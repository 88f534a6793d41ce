package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/emolens/internal/model"
)

// MemoryResultRepo はプロセス内メモリで保持する追記専用の結果リポジトリ。
// 先頭追加はミューテックスで保護され、読み手が構築途中のレコードを
// 観測することはない。プロセス再起動で履歴は失われる。
type MemoryResultRepo struct {
	mu      sync.RWMutex
	results []*model.AnalysisResult // 新しい順（完了順）
}

// NewMemoryResultRepo は空のMemoryResultRepoを生成する。
func NewMemoryResultRepo() *MemoryResultRepo {
	return &MemoryResultRepo{}
}

// Prepend は結果をコレクションの先頭に追加する。
func (r *MemoryResultRepo) Prepend(_ context.Context, result *model.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *result
	r.results = append([]*model.AnalysisResult{&copied}, r.results...)
	return nil
}

// ListAll は全結果を新しい順で返す。
func (r *MemoryResultRepo) ListAll(_ context.Context) ([]*model.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return copyResults(r.results), nil
}

// ListByOwner は所有者IDの完全一致で結果を絞り込んで返す。
func (r *MemoryResultRepo) ListByOwner(_ context.Context, ownerID string) ([]*model.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*model.AnalysisResult
	for _, result := range r.results {
		if result.OwnerID == ownerID {
			filtered = append(filtered, result)
		}
	}
	return copyResults(filtered), nil
}

// ListByEmotion は感情カテゴリで結果を絞り込んで返す。
func (r *MemoryResultRepo) ListByEmotion(_ context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []*model.AnalysisResult
	for _, result := range r.results {
		if result.Emotion == emotion {
			filtered = append(filtered, result)
		}
	}
	return copyResults(filtered), nil
}

// copyResults は結果レコードのコピーからなる新しいスライスを返す。
// 呼び出し側の変更が内部状態に波及しないようにする。
func copyResults(results []*model.AnalysisResult) []*model.AnalysisResult {
	copied := make([]*model.AnalysisResult, len(results))
	for i, result := range results {
		c := *result
		copied[i] = &c
	}
	return copied
}

// compile-time interface check
var _ ResultRepository = (*MemoryResultRepo)(nil)
