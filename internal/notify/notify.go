// Package notify はユーザー向け通知のオブザーバーを提供する。
// 操作の成否は戻り値（エラー）で判定するのが正であり、通知は
// あくまで人間向けの副次的なシグナルとして扱う。
package notify

import "log/slog"

// Notifier はユーザー向け通知のインターフェース。
// フロントエンドのトースト表示などに相当する。
type Notifier interface {
	// Success は成功通知を送る。
	Success(message string)
	// Failure は失敗通知を送る。
	Failure(message string)
}

// SlogNotifier は構造化ログとして通知を出力するNotifier実装。
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier はSlogNotifierを生成する。loggerがnilの場合はデフォルトロガーを使用する。
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogNotifier{logger: logger}
}

// Success は成功通知をINFOレベルで出力する。
func (n *SlogNotifier) Success(message string) {
	n.logger.Info("notification",
		slog.String("kind", "success"),
		slog.String("message", message),
	)
}

// Failure は失敗通知をWARNレベルで出力する。
func (n *SlogNotifier) Failure(message string) {
	n.logger.Warn("notification",
		slog.String("kind", "failure"),
		slog.String("message", message),
	)
}

// NopNotifier は何もしないNotifier実装。テスト用。
type NopNotifier struct{}

// Success は何もしない。
func (NopNotifier) Success(string) {}

// Failure は何もしない。
func (NopNotifier) Failure(string) {}

// compile-time interface checks
var (
	_ Notifier = (*SlogNotifier)(nil)
	_ Notifier = NopNotifier{}
)
