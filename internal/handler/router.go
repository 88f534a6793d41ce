package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/emolens/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	IdentityProvider  middleware.CurrentIdentityProvider
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	StatusRecorder    middleware.StatusRecorder

	// 認証
	SessionService SessionServiceInterface
	AuthMetrics    AuthMetricsRecorder

	// 分析
	AnalysisService AnalysisServiceInterface
	AdminService    AdminServiceInterface

	// 画像取り込み
	ImageFetcher ImageFetcherInterface

	// メトリクス公開
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → Session → RateLimit
//
// 認証ルート（/auth/*）とヘルスチェック、メトリクスはセッション検証の外に配置する。
// 管理者ルート（/api/admin/*）にはAdminMiddlewareを追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.StatusRecorder))
	}

	authHandler := NewAuthHandler(deps.SessionService, deps.AuthMetrics)
	analysisHandler := NewAnalysisHandler(deps.AnalysisService)
	adminHandler := NewAdminHandler(deps.AdminService)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler)

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/admin/login", authHandler.AdminLogin)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.IdentityProvider))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 感情分析
		r.Route("/api/analyses", func(r chi.Router) {
			// POST /api/analyses - 分析実行（分析専用レート制限を追加）
			r.With(deps.RateLimiter.AnalyzeMiddleware()).Post("/", analysisHandler.Analyze)

			// GET /api/analyses/me - 自分の履歴
			r.Get("/me", analysisHandler.ListMine)

			// GET /api/analyses/emotion/{emotion} - カテゴリ別一覧
			r.Get("/emotion/{emotion}", analysisHandler.ListByEmotion)
		})

		// 画像取り込み
		if deps.ImageFetcher != nil {
			imageHandler := NewImageHandler(deps.ImageFetcher)
			r.Post("/api/images/fetch", imageHandler.Fetch)
		}

		// 管理者向け集計
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminMiddleware())

			r.Get("/analyses", adminHandler.ListAll)
			r.Get("/summary", adminHandler.Summary)
		})
	})

	return r
}

// healthHandler はヘルスチェックエンドポイント。
// 依存する外部ストレージを持たないため、プロセスが応答できれば healthy とする。
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
