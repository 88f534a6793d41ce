// Package model はドメインモデルを定義する。
package model

import "time"

// Identity は認証済みプリンシパル（ユーザーまたは管理者）を表す。
// プロセス内で「現在」のIdentityは常に高々1つ。
type Identity struct {
	ID        string
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
}
