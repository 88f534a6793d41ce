package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/emolens/internal/model"
	"github.com/hitoshi/emolens/internal/notify"
	"github.com/hitoshi/emolens/internal/repository"
)

// MetricsRecorder は分析処理のメトリクス記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type MetricsRecorder interface {
	RecordAnalysis(emotion string)
	RecordAnalyzeLatency(duration time.Duration)
}

// ServiceConfig は分析サービスの設定。
type ServiceConfig struct {
	AnalyzeDelay time.Duration // 推論時間を模した人工レイテンシ
}

// Service は感情分析の実行と結果コレクションの提供を行う。
// コレクションは追記専用で、更新・削除は存在しない。
type Service struct {
	results    repository.ResultRepository
	classifier Classifier
	notifier   notify.Notifier
	metrics    MetricsRecorder
	config     ServiceConfig

	mu      sync.RWMutex
	current *model.AnalysisResult
}

// NewService はServiceを生成する。metricsはnilでもよい。
func NewService(
	results repository.ResultRepository,
	classifier Classifier,
	notifier notify.Notifier,
	metrics MetricsRecorder,
	config ServiceConfig,
) *Service {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Service{
		results:    results,
		classifier: classifier,
		notifier:   notifier,
		metrics:    metrics,
		config:     config,
	}
}

// Analyze は画像を分析し、結果をコレクションの先頭に追加して返す。
// 各呼び出しは独立しており、重複排除や合流は行わない。同時に複数の
// Analyzeが進行した場合、コレクションの順序は完了順となる。
// 失敗時はコレクションを変更せず、型付きエラーと通知で失敗を伝える。
func (s *Service) Analyze(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error) {
	if imageHandle == "" {
		return nil, model.NewEmptyImageError()
	}

	started := time.Now()

	// 推論時間を模した待機。キャンセルは一時的失敗として扱う
	if err := s.wait(ctx, s.config.AnalyzeDelay); err != nil {
		s.notifier.Failure("感情の分析に失敗しました。もう一度お試しください。")
		return nil, model.NewAnalyzeFailedError(err.Error())
	}

	classification, err := s.classifier.Classify(ctx, imageHandle)
	if err != nil {
		s.notifier.Failure("感情の分析に失敗しました。もう一度お試しください。")
		return nil, model.NewAnalyzeFailedError(err.Error())
	}

	result := &model.AnalysisResult{
		ID:         fmt.Sprintf("result_%d", time.Now().UnixNano()),
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		Emotion:    classification.Emotion,
		Confidence: classification.Confidence,
		CreatedAt:  time.Now(),
		ImageURL:   imageHandle,
	}

	if err := s.results.Prepend(ctx, result); err != nil {
		s.notifier.Failure("感情の分析に失敗しました。もう一度お試しください。")
		return nil, model.NewAnalyzeFailedError(err.Error())
	}

	s.mu.Lock()
	s.current = result
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordAnalysis(string(result.Emotion))
		s.metrics.RecordAnalyzeLatency(time.Since(started))
	}

	slog.Info("analysis completed",
		slog.String("result_id", result.ID),
		slog.String("owner_id", result.OwnerID),
		slog.String("emotion", string(result.Emotion)),
		slog.Float64("confidence", result.Confidence),
	)

	return result, nil
}

// UserResults は所有者IDで絞り込んだ結果を新しい順で返す。
func (s *Service) UserResults(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error) {
	return s.results.ListByOwner(ctx, ownerID)
}

// AllResults は全結果を新しい順で返す。管理者の集計画面向け。
func (s *Service) AllResults(ctx context.Context) ([]*model.AnalysisResult, error) {
	return s.results.ListAll(ctx)
}

// ResultsByEmotion は感情カテゴリで絞り込んだ結果を新しい順で返す。
func (s *Service) ResultsByEmotion(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error) {
	if !emotion.IsValid() {
		return nil, model.NewInvalidEmotionError(string(emotion))
	}
	return s.results.ListByEmotion(ctx, emotion)
}

// CurrentResult は直近に完了した分析結果を返す。未分析の場合はnilを返す。
func (s *Service) CurrentResult() *model.AnalysisResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// wait は人工レイテンシの分だけ待機する。コンテキストのキャンセルで中断される。
func (s *Service) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("operation cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
