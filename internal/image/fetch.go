// Package image は外部URLからの画像取り込みを提供する。
// 取得した画像はdata URI（base64エンコード）のハンドルに変換され、
// 以降のシステムでは中身を解釈しない不透明な文字列として扱われる。
package image

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/emolens/internal/model"
	"github.com/hitoshi/emolens/internal/security"
)

// Fetcher は外部URLから画像を取得しdata URIに変換する。
// SSRF防止のため、取得先はSSRFGuardServiceで検証される。
type Fetcher struct {
	guard   security.SSRFGuardService
	logger  *slog.Logger
	timeout time.Duration
	maxSize int64
}

// NewFetcher はFetcherを生成する。
func NewFetcher(guard security.SSRFGuardService, logger *slog.Logger, timeout time.Duration, maxSize int64) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		guard:   guard,
		logger:  logger,
		timeout: timeout,
		maxSize: maxSize,
	}
}

// FetchAsDataURI は指定URLから画像を取得し、MIMEプレフィックス付きの
// base64 data URIとして返す。画像以外のコンテンツはエラーになる。
func (f *Fetcher) FetchAsDataURI(ctx context.Context, rawURL string) (string, error) {
	// 1. 静的なURL検証（DNS再バインディングはSafeClient側のDialer検証で防ぐ）
	if err := f.guard.ValidateURL(rawURL); err != nil {
		return "", model.NewInvalidImageURLError(err.Error())
	}

	// 2. SSRF防止付きクライアントで取得
	client := f.guard.NewSafeClient(f.timeout, f.maxSize)

	// 3. 一時的な失敗（429/5xx）は指数バックオフ付きでリトライする
	var body []byte
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", model.NewImageFetchFailedError(ctx.Err().Error())
			case <-time.After(retryDelay(attempt - 1)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return "", model.NewInvalidImageURLError(err.Error())
		}
		req.Header.Set("User-Agent", "Emolens/1.0 Emotion Demo")

		resp, err := client.Do(req)
		if err != nil {
			f.logger.Error("画像の取得に失敗しました",
				slog.String("error", err.Error()),
			)
			return "", model.NewImageFetchFailedError(err.Error())
		}

		switch classifyStatus(resp.StatusCode) {
		case outcomeOK:
			// サイズ上限付きでボディを読み取る
			limited := io.LimitReader(resp.Body, f.maxSize+1)
			body, err = io.ReadAll(limited)
			resp.Body.Close()
			if err != nil {
				return "", model.NewImageFetchFailedError(err.Error())
			}
		case outcomeRetry:
			resp.Body.Close()
			if attempt == maxAttempts-1 {
				return "", model.NewImageFetchFailedError(fmt.Sprintf("status %d after %d attempts", resp.StatusCode, maxAttempts))
			}
			f.logger.Warn("画像の取得を再試行します",
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt+1),
			)
			continue
		default:
			resp.Body.Close()
			return "", model.NewImageFetchFailedError(fmt.Sprintf("status %d", resp.StatusCode))
		}
		break
	}
	if int64(len(body)) > f.maxSize {
		return "", model.NewImageFetchFailedError(fmt.Sprintf("response exceeds %d bytes", f.maxSize))
	}
	if len(body) == 0 {
		return "", model.NewImageFetchFailedError("empty response body")
	}

	// 4. 画像であることをコンテンツから判定する（ヘッダーは信用しない）
	contentType := http.DetectContentType(body)
	if !strings.HasPrefix(contentType, "image/") {
		return "", model.NewNotAnImageError(contentType)
	}

	encoded := base64.StdEncoding.EncodeToString(body)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), nil
}
