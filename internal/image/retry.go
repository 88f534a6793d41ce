package image

import (
	"time"
)

// fetchOutcome はHTTPステータスコードに基づく取得結果の分類。
type fetchOutcome int

const (
	// outcomeOK は取得成功（200）。
	outcomeOK fetchOutcome = iota
	// outcomeRetry はリトライ可能なステータス（429/5xx）。
	outcomeRetry
	// outcomeFail はリトライしても無駄なステータス（4xxなど）。
	outcomeFail
)

const (
	// maxAttempts はリトライを含む最大試行回数。
	maxAttempts = 3
	// initialRetryDelay は指数バックオフの初回遅延。
	initialRetryDelay = 200 * time.Millisecond
)

// classifyStatus はHTTPステータスコードを取得結果に分類する。
// 429と5xxは一時的な失敗としてリトライ対象にする。
func classifyStatus(statusCode int) fetchOutcome {
	switch {
	case statusCode == 200:
		return outcomeOK
	case statusCode == 429:
		return outcomeRetry
	case statusCode >= 500:
		return outcomeRetry
	default:
		return outcomeFail
	}
}

// retryDelay は試行回数に基づいて指数バックオフ遅延を計算する。
// 初回200ms、2倍ずつ増加。attemptは0始まり。
func retryDelay(attempt int) time.Duration {
	delay := initialRetryDelay
	for i := 0; i < attempt; i++ {
		delay *= 2
	}
	return delay
}
