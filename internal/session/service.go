// Package session はログインセッション（現在のIdentity）の管理を提供する。
// プロセス内で「現在」のIdentityは常に高々1つであり、永続スロットを通じて
// プロセス再起動をまたいで復元される。
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/emolens/internal/model"
	"github.com/hitoshi/emolens/internal/notify"
	"github.com/hitoshi/emolens/internal/repository"
)

// 固定の管理者認証情報。デモ用であり設定変更は想定しない。
// 大文字小文字を区別して完全一致で照合する。
const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin"
)

// ServiceConfig はセッションサービスの設定。
type ServiceConfig struct {
	LoginDelay time.Duration // ネットワーク往復を模した人工レイテンシ
}

// Service はログイン・ログアウトとIdentityの保持を提供する。
// グローバルなストアではなく、明示的に生成して参照を渡して使用する。
type Service struct {
	identities repository.IdentityRepository
	slot       repository.SessionSlotRepository
	notifier   notify.Notifier
	config     ServiceConfig

	mu      sync.RWMutex
	current *model.Identity
	loading bool
}

// NewService はServiceを生成する。
func NewService(
	identities repository.IdentityRepository,
	slot repository.SessionSlotRepository,
	notifier notify.Notifier,
	config ServiceConfig,
) *Service {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Service{
		identities: identities,
		slot:       slot,
		notifier:   notifier,
		config:     config,
	}
}

// Login はメールアドレスのみでログインする。
// テーブルに存在するメールアドレスなら同じIdentityを返し（冪等）、
// 未知のメールアドレスなら非管理者のIdentityを新規作成して登録する。
// 成功時は現在のIdentityを更新し、永続スロットに書き込む。
// 失敗時は現在のIdentityを変更せず、型付きエラーと通知で失敗を伝える。
func (s *Service) Login(ctx context.Context, email string) (*model.Identity, error) {
	if email == "" {
		return nil, model.NewInvalidEmailError()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	// ネットワーク往復を模した待機。キャンセルは一時的失敗として扱う
	if err := s.wait(ctx, s.config.LoginDelay); err != nil {
		s.notifier.Failure("ログインに失敗しました。もう一度お試しください。")
		return nil, model.NewLoginFailedError(err.Error())
	}

	identity, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		s.notifier.Failure("ログインに失敗しました。もう一度お試しください。")
		return nil, model.NewLoginFailedError(err.Error())
	}

	if identity == nil {
		identity = &model.Identity{
			ID:        uuid.New().String(),
			Email:     email,
			IsAdmin:   false,
			CreatedAt: time.Now(),
		}
		if err := s.identities.Create(ctx, identity); err != nil {
			s.notifier.Failure("ログインに失敗しました。もう一度お試しください。")
			return nil, model.NewLoginFailedError(err.Error())
		}
		slog.Info("new identity created",
			slog.String("identity_id", identity.ID),
			slog.String("email", identity.Email),
		)
	}

	s.setCurrent(identity)

	welcome := "ようこそ！"
	if identity.IsAdmin {
		welcome = "ようこそ、管理者さん！"
	}
	s.notifier.Success(welcome)

	slog.Info("user logged in",
		slog.String("identity_id", identity.ID),
		slog.String("email", identity.Email),
		slog.Bool("is_admin", identity.IsAdmin),
	)

	return identity, nil
}

// AdminLogin は固定の管理者認証情報によるログインを行う。
// メールアドレスとパスワードの両方が完全一致した場合のみ成功する。
// 照合失敗時は現在のIdentityを変更せず、認証失敗の型付きエラーを返す。
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*model.Identity, error) {
	if email == "" || password == "" {
		return nil, model.NewInvalidAdminCredentialsError()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.wait(ctx, s.config.LoginDelay); err != nil {
		s.notifier.Failure("管理者ログインに失敗しました。もう一度お試しください。")
		return nil, model.NewLoginFailedError(err.Error())
	}

	if email != adminEmail || password != adminPassword {
		s.notifier.Failure("管理者の認証情報が正しくありません。")
		slog.Warn("admin login rejected", slog.String("email", email))
		return nil, model.NewInvalidAdminCredentialsError()
	}

	identity, err := s.identities.FindByEmail(ctx, adminEmail)
	if err != nil || identity == nil {
		s.notifier.Failure("管理者ログインに失敗しました。もう一度お試しください。")
		return nil, model.NewLoginFailedError("admin identity not found")
	}

	s.setCurrent(identity)
	s.notifier.Success("ようこそ、管理者さん！")

	slog.Info("admin logged in", slog.String("identity_id", identity.ID))

	return identity, nil
}

// Logout は現在のIdentityと永続スロットを無条件にクリアする。
// 同期的に完了し、常に成功する。スロットのクリア失敗はログに残すのみ。
func (s *Service) Logout() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.slot.Clear(context.Background()); err != nil {
		slog.Error("failed to clear session slot on logout",
			slog.String("error", err.Error()),
		)
	}

	s.notifier.Success("ログアウトしました。")
	slog.Info("user logged out")
}

// Restore はプロセス起動時に永続スロットから前回のIdentityを復元する。
// スロットが正常ならテーブルとの照合なしで現在のIdentityとして設定する。
// 内容が壊れている場合はスロットをクリアし、未認証のまま開始する。
// エラーはローカルに回復され、呼び出し側に伝播しない。
func (s *Service) Restore(ctx context.Context) {
	identity, err := s.slot.Load(ctx)
	if err != nil {
		slog.Error("failed to restore session from slot, clearing",
			slog.String("error", err.Error()),
		)
		if clearErr := s.slot.Clear(ctx); clearErr != nil {
			slog.Error("failed to clear malformed session slot",
				slog.String("error", clearErr.Error()),
			)
		}
		return
	}
	if identity == nil {
		return
	}

	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	slog.Info("session restored",
		slog.String("identity_id", identity.ID),
		slog.String("email", identity.Email),
	)
}

// Current は現在のIdentityを返す。未認証の場合はnilを返す。
func (s *Service) Current() *model.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// IsLoading はログイン処理が進行中かどうかを返す。
// 認証状態（Current）とは直交するフラグであり、認証済みのまま
// 再ログインが進行することもある。
func (s *Service) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// setCurrent は現在のIdentityを更新し、永続スロットに書き込む。
// スロットの書き込みと現在値の更新は後勝ちで競合を解決する。
func (s *Service) setCurrent(identity *model.Identity) {
	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()

	if err := s.slot.Save(context.Background(), identity); err != nil {
		slog.Error("failed to persist session slot",
			slog.String("error", err.Error()),
			slog.String("identity_id", identity.ID),
		)
	}
}

// setLoading はローディングフラグを更新する。
func (s *Service) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// wait は人工レイテンシの分だけ待機する。コンテキストのキャンセルで中断される。
func (s *Service) wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("operation cancelled: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
