// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, analysis, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeInvalidEmail            = "INVALID_EMAIL"
	ErrCodeInvalidAdminCredentials = "INVALID_ADMIN_CREDENTIALS"
	ErrCodeLoginFailed             = "LOGIN_FAILED"
	ErrCodeEmptyImage              = "EMPTY_IMAGE"
	ErrCodeInvalidEmotion          = "INVALID_EMOTION"
	ErrCodeAnalyzeFailed           = "ANALYZE_FAILED"
	ErrCodeInvalidImageURL         = "INVALID_IMAGE_URL"
	ErrCodeImageFetchFailed        = "IMAGE_FETCH_FAILED"
	ErrCodeNotAnImage              = "NOT_AN_IMAGE"
)

// NewInvalidEmailError はメールアドレス未入力エラーを生成する。
func NewInvalidEmailError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEmail,
		Message:  "メールアドレスが入力されていません。",
		Category: "validation",
		Action:   "メールアドレスを入力してください。",
	}
}

// NewInvalidAdminCredentialsError は管理者認証失敗エラーを生成する。
// 呼び出し側が成功と失敗をプログラム的に区別できるよう、型付きエラーとして返す。
func NewInvalidAdminCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidAdminCredentials,
		Message:  "管理者の認証情報が正しくありません。",
		Category: "auth",
		Action:   "メールアドレスとパスワードを確認してください。",
	}
}

// NewLoginFailedError はログイン処理の一時的な失敗エラーを生成する。
func NewLoginFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeLoginFailed,
		Message:  fmt.Sprintf("ログインに失敗しました: %s", reason),
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewEmptyImageError は画像ハンドル未指定エラーを生成する。
func NewEmptyImageError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyImage,
		Message:  "画像データが指定されていません。",
		Category: "validation",
		Action:   "撮影またはアップロードした画像を指定してください。",
	}
}

// NewInvalidEmotionError は未定義の感情カテゴリ指定エラーを生成する。
func NewInvalidEmotionError(emotion string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidEmotion,
		Message:  fmt.Sprintf("未定義の感情カテゴリです: %s", emotion),
		Category: "validation",
		Action:   "happy、sad、neutral、smile のいずれかを指定してください。",
	}
}

// NewAnalyzeFailedError は分析処理の一時的な失敗エラーを生成する。
func NewAnalyzeFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeAnalyzeFailed,
		Message:  fmt.Sprintf("感情分析に失敗しました: %s", reason),
		Category: "analysis",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewInvalidImageURLError は無効な画像URLエラーを生成する。
func NewInvalidImageURLError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidImageURL,
		Message:  fmt.Sprintf("無効な画像URLです: %s", reason),
		Category: "validation",
		Action:   "公開されている画像のURL（http:// または https://）を入力してください。",
	}
}

// NewImageFetchFailedError は画像取得失敗エラーを生成する。
func NewImageFetchFailedError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeImageFetchFailed,
		Message:  fmt.Sprintf("画像の取得に失敗しました: %s", reason),
		Category: "system",
		Action:   "URLが正しいか確認し、しばらく待ってから再度お試しください。",
	}
}

// NewNotAnImageError は画像以外のコンテンツ取得エラーを生成する。
func NewNotAnImageError(contentType string) *APIError {
	return &APIError{
		Code:     ErrCodeNotAnImage,
		Message:  fmt.Sprintf("取得したコンテンツは画像ではありません: %s", contentType),
		Category: "validation",
		Action:   "画像ファイルを指すURLを入力してください。",
	}
}
