// Package analysis は感情分析の実行と結果コレクションの管理を提供する。
package analysis

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/hitoshi/emolens/internal/model"
)

// Classification は分類器が返す1件の分類結果。
type Classification struct {
	Emotion    model.Emotion
	Confidence float64 // [0.5, 1.0)
}

// Classifier は画像ハンドルから感情分類を生成するインターフェース。
// 実際のMLモデルに差し替える場合はこのインターフェースの実装を入れ替える。
// コレクション管理のロジックには触れない。
type Classifier interface {
	// Classify は画像ハンドルを分類する。ハンドルの中身は解釈しなくてよい。
	Classify(ctx context.Context, imageHandle string) (*Classification, error)
}

// RandomClassifier は一様ランダムに感情を選ぶモック分類器。
// 信頼度は[0.5, 1.0)の一様分布から引く。
type RandomClassifier struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomClassifier はRandomClassifierを生成する。
func NewRandomClassifier() *RandomClassifier {
	return &RandomClassifier{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Classify は4カテゴリから一様ランダムに1つ選び、信頼度を[0.5, 1.0)から引く。
// モックであるため正当な失敗経路は存在しない。
func (c *RandomClassifier) Classify(_ context.Context, _ string) (*Classification, error) {
	c.mu.Lock()
	emotion := model.Emotions[c.rng.Intn(len(model.Emotions))]
	confidence := 0.5 + c.rng.Float64()*0.5
	c.mu.Unlock()

	return &Classification{
		Emotion:    emotion,
		Confidence: confidence,
	}, nil
}

// compile-time interface check
var _ Classifier = (*RandomClassifier)(nil)
