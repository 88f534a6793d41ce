package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/emolens/internal/middleware"
	"github.com/hitoshi/emolens/internal/model"
)

// --- モック定義 ---

type mockAnalysisService struct {
	analyzeFn          func(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error)
	userResultsFn      func(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error)
	resultsByEmotionFn func(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error)
}

func (m *mockAnalysisService) Analyze(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, imageHandle, ownerID, ownerEmail)
	}
	return nil, nil
}

func (m *mockAnalysisService) UserResults(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error) {
	if m.userResultsFn != nil {
		return m.userResultsFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockAnalysisService) ResultsByEmotion(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error) {
	if m.resultsByEmotionFn != nil {
		return m.resultsByEmotionFn(ctx, emotion)
	}
	return nil, nil
}

var _ AnalysisServiceInterface = (*mockAnalysisService)(nil)

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	identity := &model.Identity{ID: "1", Email: "user@example.com"}
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

// --- Analyze のテスト ---

func TestAnalysisHandler_Analyze_Success_Returns201(t *testing.T) {
	service := &mockAnalysisService{
		analyzeFn: func(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error) {
			if ownerID != "1" || ownerEmail != "user@example.com" {
				t.Errorf("owner = %q/%q, want from session identity", ownerID, ownerEmail)
			}
			return &model.AnalysisResult{
				ID:         "result_1",
				OwnerID:    ownerID,
				OwnerEmail: ownerEmail,
				Emotion:    model.EmotionHappy,
				Confidence: 0.9,
				ImageURL:   imageHandle,
			}, nil
		},
	}
	h := NewAnalysisHandler(service)

	req := authedRequest(http.MethodPost, "/api/analyses", `{"image":"data:image/png;base64,xxxx"}`)
	w := httptest.NewRecorder()

	h.Analyze(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}

	var got resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if got.Emotion != "happy" {
		t.Errorf("emotion = %q, want %q", got.Emotion, "happy")
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", got.Confidence)
	}
}

func TestAnalysisHandler_Analyze_EmptyImage_Returns400(t *testing.T) {
	service := &mockAnalysisService{
		analyzeFn: func(ctx context.Context, imageHandle, ownerID, ownerEmail string) (*model.AnalysisResult, error) {
			return nil, model.NewEmptyImageError()
		},
	}
	h := NewAnalysisHandler(service)

	req := authedRequest(http.MethodPost, "/api/analyses", `{"image":""}`)
	w := httptest.NewRecorder()

	h.Analyze(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var errBody map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if errBody["code"] != "EMPTY_IMAGE" {
		t.Errorf("code = %q, want %q", errBody["code"], "EMPTY_IMAGE")
	}
}

func TestAnalysisHandler_Analyze_NoIdentity_Returns401(t *testing.T) {
	h := NewAnalysisHandler(&mockAnalysisService{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyses", strings.NewReader(`{"image":"x"}`))
	w := httptest.NewRecorder()

	h.Analyze(w, req)

	if w.Result().StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Result().StatusCode, http.StatusUnauthorized)
	}
}

// --- ListMine のテスト ---

func TestAnalysisHandler_ListMine_ReturnsResults(t *testing.T) {
	service := &mockAnalysisService{
		userResultsFn: func(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error) {
			return []*model.AnalysisResult{
				{ID: "r2", OwnerID: ownerID, Emotion: model.EmotionSad},
				{ID: "r1", OwnerID: ownerID, Emotion: model.EmotionHappy},
			}, nil
		},
	}
	h := NewAnalysisHandler(service)

	req := authedRequest(http.MethodGet, "/api/analyses/me", "")
	w := httptest.NewRecorder()

	h.ListMine(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got []resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "r2" {
		t.Errorf("results = %+v, want [r2 r1]", got)
	}
}

func TestAnalysisHandler_ListMine_Empty_ReturnsEmptyArray(t *testing.T) {
	h := NewAnalysisHandler(&mockAnalysisService{})

	req := authedRequest(http.MethodGet, "/api/analyses/me", "")
	w := httptest.NewRecorder()

	h.ListMine(w, req)

	// nullではなく空配列を返すこと
	body := strings.TrimSpace(w.Body.String())
	if body != "[]" {
		t.Errorf("body = %q, want %q", body, "[]")
	}
}

// --- ListByEmotion のテスト ---

func TestAnalysisHandler_ListByEmotion_ValidCategory(t *testing.T) {
	service := &mockAnalysisService{
		resultsByEmotionFn: func(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error) {
			if emotion != model.EmotionHappy {
				t.Errorf("emotion = %q, want happy", emotion)
			}
			return []*model.AnalysisResult{
				{ID: "r1", Emotion: model.EmotionHappy},
			}, nil
		},
	}
	h := NewAnalysisHandler(service)

	r := chi.NewRouter()
	r.Get("/api/analyses/emotion/{emotion}", h.ListByEmotion)

	req := authedRequest(http.MethodGet, "/api/analyses/emotion/happy", "")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var got []resultResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestAnalysisHandler_ListByEmotion_UnknownCategory_Returns400(t *testing.T) {
	service := &mockAnalysisService{
		resultsByEmotionFn: func(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error) {
			return nil, model.NewInvalidEmotionError(string(emotion))
		},
	}
	h := NewAnalysisHandler(service)

	r := chi.NewRouter()
	r.Get("/api/analyses/emotion/{emotion}", h.ListByEmotion)

	req := authedRequest(http.MethodGet, "/api/analyses/emotion/angry", "")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	var errBody map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if errBody["code"] != "INVALID_EMOTION" {
		t.Errorf("code = %q, want %q", errBody["code"], "INVALID_EMOTION")
	}
}
