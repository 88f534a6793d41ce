package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/emolens/internal/model"
)

// ImageFetcherInterface は画像取り込みハンドラーが必要とするインターフェース。
type ImageFetcherInterface interface {
	// FetchAsDataURI は外部URLから画像を取得しdata URIとして返す。
	FetchAsDataURI(ctx context.Context, rawURL string) (string, error)
}

// ImageHandler は外部URLからの画像取り込みのHTTPハンドラー。
// 取得した画像はdata URIハンドルとして返し、分析リクエストにそのまま使える。
type ImageHandler struct {
	fetcher ImageFetcherInterface
}

// NewImageHandler はImageHandlerを生成する。
func NewImageHandler(fetcher ImageFetcherInterface) *ImageHandler {
	return &ImageHandler{fetcher: fetcher}
}

// fetchImageRequest は画像取り込みリクエストのボディ。
type fetchImageRequest struct {
	URL string `json:"url"`
}

// fetchImageResponse は画像取り込みのAPIレスポンス。
type fetchImageResponse struct {
	Image string `json:"image"`
}

// Fetch は外部URLから画像を取得しdata URIとして返す。
// POST /api/images/fetch
func (h *ImageHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	var req fetchImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.URL == "" {
		handleServiceError(w, model.NewInvalidImageURLError("URLが空です"))
		return
	}

	dataURI, err := h.fetcher.FetchAsDataURI(r.Context(), req.URL)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fetchImageResponse{Image: dataURI})
}
