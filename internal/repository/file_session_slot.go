package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hitoshi/emolens/internal/model"
)

// ErrMalformedSlot はスロットの内容が解析不能であることを示す。
// 呼び出し側はこのエラーを受けてスロットのClearを行う。
var ErrMalformedSlot = errors.New("session slot contains malformed data")

// slotRecord はスロットに書き込むシリアライズ形式。
// id/email/isAdmin/createdAt をラウンドトリップする。
type slotRecord struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// FileSessionSlot はJSONファイル1つをスロットとして使用する永続化実装。
// 各操作はファイルを開いて読み書きし閉じるだけで、操作をまたぐロックは持たない。
// 同時書き込みは後勝ちで解決される。
type FileSessionSlot struct {
	path string
}

// NewFileSessionSlot は指定パスをスロットとして使用するFileSessionSlotを生成する。
func NewFileSessionSlot(path string) *FileSessionSlot {
	return &FileSessionSlot{path: path}
}

// Save はIdentityをスロットに書き込む。既存の内容は上書きされる。
func (s *FileSessionSlot) Save(_ context.Context, identity *model.Identity) error {
	record := slotRecord{
		ID:        identity.ID,
		Email:     identity.Email,
		IsAdmin:   identity.IsAdmin,
		CreatedAt: identity.CreatedAt,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session slot: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session slot directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session slot: %w", err)
	}
	return nil
}

// Load はスロットからIdentityを読み出す。スロットが存在しない場合はnilを返す。
// 内容が壊れている場合はErrMalformedSlotを返す。
func (s *FileSessionSlot) Load(_ context.Context) (*model.Identity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session slot: %w", err)
	}

	var record slotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSlot, err)
	}
	if record.ID == "" || record.Email == "" {
		return nil, fmt.Errorf("%w: missing id or email", ErrMalformedSlot)
	}

	return &model.Identity{
		ID:        record.ID,
		Email:     record.Email,
		IsAdmin:   record.IsAdmin,
		CreatedAt: record.CreatedAt,
	}, nil
}

// Clear はスロットを無条件に空にする。スロットが既に空でも成功する。
func (s *FileSessionSlot) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session slot: %w", err)
	}
	return nil
}

// compile-time interface check
var _ SessionSlotRepository = (*FileSessionSlot)(nil)
