package analysis

import (
	"context"
	"math"

	"github.com/hitoshi/emolens/internal/model"
)

// EmotionStat は1カテゴリの集計値。
type EmotionStat struct {
	Count      int // 件数
	Percentage int // 全体に対する割合（四捨五入した整数パーセント）
}

// UserGroup は1ユーザー分の結果グループ。
type UserGroup struct {
	OwnerID    string
	OwnerEmail string
	Results    []*model.AnalysisResult // 新しい順
}

// Summary は管理者向けの集計ビュー。
type Summary struct {
	Total    int
	Emotions map[model.Emotion]EmotionStat
	Users    []UserGroup // 最初に結果が出現したユーザー順
}

// Summarize は全結果から管理者向けの集計を作成する。
// カテゴリ別の件数と割合、ユーザーごとのグループを含む。
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	results, err := s.results.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Total:    len(results),
		Emotions: make(map[model.Emotion]EmotionStat, len(model.Emotions)),
	}

	counts := make(map[model.Emotion]int, len(model.Emotions))
	groupIndex := make(map[string]int)

	for _, result := range results {
		counts[result.Emotion]++

		idx, ok := groupIndex[result.OwnerID]
		if !ok {
			summary.Users = append(summary.Users, UserGroup{
				OwnerID:    result.OwnerID,
				OwnerEmail: result.OwnerEmail,
			})
			idx = len(summary.Users) - 1
			groupIndex[result.OwnerID] = idx
		}
		summary.Users[idx].Results = append(summary.Users[idx].Results, result)
	}

	for _, emotion := range model.Emotions {
		stat := EmotionStat{Count: counts[emotion]}
		if summary.Total > 0 {
			stat.Percentage = int(math.Round(float64(stat.Count) / float64(summary.Total) * 100))
		}
		summary.Emotions[emotion] = stat
	}

	return summary, nil
}
