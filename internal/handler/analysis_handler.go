package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/emolens/internal/middleware"
	"github.com/hitoshi/emolens/internal/model"
)

// AnalysisServiceInterface は分析ハンドラーが必要とするサービスインターフェース。
type AnalysisServiceInterface interface {
	// Analyze は画像を分析し結果を返す。
	Analyze(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error)
	// UserResults は所有者の結果一覧を新しい順で返す。
	UserResults(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error)
	// ResultsByEmotion は感情カテゴリ別の結果一覧を新しい順で返す。
	ResultsByEmotion(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error)
}

// AnalysisHandler は感情分析のHTTPハンドラー。
type AnalysisHandler struct {
	service AnalysisServiceInterface
}

// NewAnalysisHandler はAnalysisHandlerを生成する。
func NewAnalysisHandler(service AnalysisServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// analyzeRequest は分析リクエストのボディ。
// imageはdata URI等のエンコード済み画像ハンドル。中身は解釈しない。
type analyzeRequest struct {
	Image string `json:"image"`
}

// Analyze は画像の感情分析を処理する。所有者は現在のセッションのIdentity。
// POST /api/analyses
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	result, err := h.service.Analyze(r.Context(), req.Image, identity.ID, identity.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResultResponse(result))
}

// ListMine は現在のユーザーの分析履歴を新しい順で返す。
// GET /api/analyses/me
func (h *AnalysisHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity, err := middleware.IdentityFromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	results, err := h.service.UserResults(r.Context(), identity.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultListResponse(results))
}

// ListByEmotion は感情カテゴリで絞り込んだ結果一覧を返す。
// GET /api/analyses/emotion/{emotion}
func (h *AnalysisHandler) ListByEmotion(w http.ResponseWriter, r *http.Request) {
	emotion := model.Emotion(chi.URLParam(r, "emotion"))

	results, err := h.service.ResultsByEmotion(r.Context(), emotion)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultListResponse(results))
}
