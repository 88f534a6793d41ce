// Package repository はデータ保持のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/emolens/internal/model"
)

// IdentityRepository はIdentityテーブル（メールアドレス→Identity）のインターフェース。
// デモ用プロセス内テーブルであり、全操作はプロセス寿命に閉じる。
type IdentityRepository interface {
	// FindByEmail はメールアドレスの完全一致でIdentityを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)

	// Create はIdentityをテーブルに登録する。
	// 同一メールアドレスでの再ログインが同じIdentityを返せるようにするための登録。
	Create(ctx context.Context, identity *model.Identity) error
}

// ResultRepository は感情分析結果コレクションのインターフェース。
// コレクションは追記専用で、新しい結果が先頭に来る（完了順）。
type ResultRepository interface {
	// Prepend は結果をコレクションの先頭に追加する。
	Prepend(ctx context.Context, result *model.AnalysisResult) error

	// ListAll は全結果を現在の順序（新しい順）で返す。
	ListAll(ctx context.Context) ([]*model.AnalysisResult, error)

	// ListByOwner は所有者IDの完全一致で結果を絞り込んで返す。順序は維持される。
	ListByOwner(ctx context.Context, ownerID string) ([]*model.AnalysisResult, error)

	// ListByEmotion は感情カテゴリで結果を絞り込んで返す。順序は維持される。
	ListByEmotion(ctx context.Context, emotion model.Emotion) ([]*model.AnalysisResult, error)
}

// SessionSlotRepository はIdentityを1件だけ保持する永続スロットのインターフェース。
// プロセス再起動をまたいでログイン状態を復元するために使用する。
// 各操作は独立してスロットを開閉し、操作をまたぐロックは保持しない。
type SessionSlotRepository interface {
	// Save はIdentityをスロットに書き込む。既存の内容は上書きされる。
	Save(ctx context.Context, identity *model.Identity) error

	// Load はスロットからIdentityを読み出す。スロットが空の場合はnilを返す。
	// 内容が壊れている場合はErrMalformedSlotを返す（呼び出し側がClearを判断する）。
	Load(ctx context.Context) (*model.Identity, error)

	// Clear はスロットを無条件に空にする。スロットが既に空でも成功する。
	Clear(ctx context.Context) error
}
