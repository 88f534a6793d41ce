package model

import "time"

// Emotion は感情分析の分類カテゴリを表す。
type Emotion string

const (
	EmotionHappy   Emotion = "happy"
	EmotionSad     Emotion = "sad"
	EmotionNeutral Emotion = "neutral"
	EmotionSmile   Emotion = "smile"
)

// Emotions は全カテゴリの一覧。分類器のランダム選択とバリデーションに使用する。
var Emotions = []Emotion{EmotionHappy, EmotionSad, EmotionNeutral, EmotionSmile}

// IsValid はEmotionが定義済みカテゴリのいずれかであるかを検証する。
func (e Emotion) IsValid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// AnalysisResult は1回の感情分析の結果を表す。
// 作成後はイミュータブルで、更新・削除操作は存在しない。
type AnalysisResult struct {
	ID         string  // 時刻由来のID（result_<unixnano>）
	OwnerID    string  // 所有者のIdentity ID
	OwnerEmail string  // 表示用に非正規化した所有者メールアドレス
	Emotion    Emotion
	Confidence float64 // [0.5, 1.0) の範囲
	CreatedAt  time.Time
	ImageURL   string // data URI等のエンコード済み画像ハンドル。中身は解釈しない
}
