// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hitoshi/emolens/internal/middleware"
	"github.com/hitoshi/emolens/internal/model"
)

// identityResponse はIdentityのAPIレスポンス。
type identityResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// resultResponse は分析結果のAPIレスポンス。
type resultResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	OwnerEmail string    `json:"owner_email"`
	Emotion    string    `json:"emotion"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	ImageURL   string    `json:"image_url"`
}

// toIdentityResponse はIdentityをレスポンス形式に変換する。
func toIdentityResponse(identity *model.Identity) identityResponse {
	return identityResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		IsAdmin:   identity.IsAdmin,
		CreatedAt: identity.CreatedAt,
	}
}

// toResultResponse は分析結果をレスポンス形式に変換する。
func toResultResponse(result *model.AnalysisResult) resultResponse {
	return resultResponse{
		ID:         result.ID,
		OwnerID:    result.OwnerID,
		OwnerEmail: result.OwnerEmail,
		Emotion:    string(result.Emotion),
		Confidence: result.Confidence,
		CreatedAt:  result.CreatedAt,
		ImageURL:   result.ImageURL,
	}
}

// toResultListResponse は分析結果のスライスをレスポンス形式に変換する。
// 結果が空でもnullではなく空配列を返す。
func toResultListResponse(results []*model.AnalysisResult) []resultResponse {
	responses := make([]resultResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, toResultResponse(result))
	}
	return responses
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
// APIErrorはカテゴリに応じたステータスコードで返し、それ以外は500を返す。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		middleware.WriteErrorResponse(w, statusForAPIError(apiErr), apiErr)
		return
	}
	middleware.WriteInternalServerError(w)
}

// statusForAPIError はAPIErrorに対応するHTTPステータスコードを返す。
func statusForAPIError(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeInvalidAdminCredentials:
		return http.StatusUnauthorized
	case model.ErrCodeInvalidEmail,
		model.ErrCodeEmptyImage,
		model.ErrCodeInvalidEmotion,
		model.ErrCodeInvalidImageURL,
		model.ErrCodeNotAnImage:
		return http.StatusBadRequest
	case model.ErrCodeImageFetchFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeInvalidRequestBody はリクエストボディ解析失敗の統一レスポンスを書き込む。
func writeInvalidRequestBody(w http.ResponseWriter) {
	middleware.WriteErrorResponse(w, http.StatusBadRequest, &model.APIError{
		Code:     "INVALID_REQUEST",
		Message:  "リクエストボディの解析に失敗しました。",
		Category: "validation",
		Action:   "正しいJSON形式でリクエストしてください。",
	})
}
