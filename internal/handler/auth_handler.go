package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/emolens/internal/model"
)

// SessionServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type SessionServiceInterface interface {
	Login(ctx context.Context, email string) (*model.Identity, error)
	AdminLogin(ctx context.Context, email, password string) (*model.Identity, error)
	Logout()
	Current() *model.Identity
}

// AuthMetricsRecorder はログインメトリクスの記録インターフェース。
// metrics.Collectorの部分集合として定義する。
type AuthMetricsRecorder interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// AuthHandler は認証関連のHTTPハンドラー。
type AuthHandler struct {
	service SessionServiceInterface
	metrics AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。metricsはnilでもよい。
func NewAuthHandler(service SessionServiceInterface, metrics AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service: service,
		metrics: metrics,
	}
}

// loginRequest は一般ログインリクエストのボディ。
type loginRequest struct {
	Email string `json:"email"`
}

// adminLoginRequest は管理者ログインリクエストのボディ。
type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login はメールアドレスのみの一般ログインを処理する。
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	identity, err := h.service.Login(r.Context(), req.Email)
	if err != nil {
		h.recordLoginFailure()
		handleServiceError(w, err)
		return
	}

	h.recordLoginSuccess()
	writeJSON(w, http.StatusOK, toIdentityResponse(identity))
}

// AdminLogin は管理者ログインを処理する。
// 認証失敗は401と型付きエラーコードで返し、呼び出し側が
// プログラム的に成功と区別できるようにする。
// POST /auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	identity, err := h.service.AdminLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.recordLoginFailure()
		handleServiceError(w, err)
		return
	}

	h.recordLoginSuccess()
	writeJSON(w, http.StatusOK, toIdentityResponse(identity))
}

// Logout はログアウトを処理する。常に成功する。
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.service.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Me は現在のログインユーザー情報を返す。
// GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := h.service.Current()
	if identity == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, toIdentityResponse(identity))
}

// recordLoginSuccess はログイン成功メトリクスを記録する。
func (h *AuthHandler) recordLoginSuccess() {
	if h.metrics != nil {
		h.metrics.RecordLoginSuccess()
	}
}

// recordLoginFailure はログイン失敗メトリクスを記録する。
func (h *AuthHandler) recordLoginFailure() {
	if h.metrics != nil {
		h.metrics.RecordLoginFailure()
	}
}
