package handler

import (
	"context"
	"net/http"

	"github.com/hitoshi/emolens/internal/analysis"
	"github.com/hitoshi/emolens/internal/model"
)

// AdminServiceInterface は管理者ハンドラーが必要とするサービスインターフェース。
type AdminServiceInterface interface {
	// AllResults は全ユーザーの結果一覧を新しい順で返す。
	AllResults(ctx context.Context) ([]*model.AnalysisResult, error)
	// Summarize は全結果の集計ビューを返す。
	Summarize(ctx context.Context) (*analysis.Summary, error)
}

// AdminHandler は管理者向け集計のHTTPハンドラー。
// ルーティング側でAdminMiddlewareにより管理者のみに制限される。
type AdminHandler struct {
	service AdminServiceInterface
}

// NewAdminHandler はAdminHandlerを生成する。
func NewAdminHandler(service AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: service}
}

// emotionStatResponse は1カテゴリの集計のAPIレスポンス。
type emotionStatResponse struct {
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

// userGroupResponse は1ユーザー分のグループのAPIレスポンス。
type userGroupResponse struct {
	OwnerID    string           `json:"owner_id"`
	OwnerEmail string           `json:"owner_email"`
	Results    []resultResponse `json:"results"`
}

// summaryResponse は集計ビューのAPIレスポンス。
type summaryResponse struct {
	Total    int                            `json:"total"`
	Emotions map[string]emotionStatResponse `json:"emotions"`
	Users    []userGroupResponse            `json:"users"`
}

// ListAll は全ユーザーの分析結果を新しい順で返す。
// GET /api/admin/analyses
func (h *AdminHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.AllResults(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultListResponse(results))
}

// Summary はカテゴリ別集計とユーザー別グループを返す。
// GET /api/admin/summary
func (h *AdminHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summarize(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := summaryResponse{
		Total:    summary.Total,
		Emotions: make(map[string]emotionStatResponse, len(summary.Emotions)),
		Users:    make([]userGroupResponse, 0, len(summary.Users)),
	}
	for emotion, stat := range summary.Emotions {
		resp.Emotions[string(emotion)] = emotionStatResponse{
			Count:      stat.Count,
			Percentage: stat.Percentage,
		}
	}
	for _, group := range summary.Users {
		resp.Users = append(resp.Users, userGroupResponse{
			OwnerID:    group.OwnerID,
			OwnerEmail: group.OwnerEmail,
			Results:    toResultListResponse(group.Results),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
