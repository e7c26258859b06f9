package schedule

import (
	"sort"

	"timealign/internal/model"
)

const bestTimesLimit = 10

// RankedSlot 一格時段與選擇人數；Slot 保留該 key 第一次出現時的值供顯示
type RankedSlot struct {
	Slot  model.TimeSlot `json:"slot"`
	Count int            `json:"count"`
}

// Aggregation 全活動的彙整結果
type Aggregation struct {
	// Heatmap slot-key -> 人數；沒人選的格子不存在於 map 中
	Heatmap map[string]int `json:"heatmap"`
	// BestTimes 依人數遞減排序，同票數維持首次出現順序，最多 10 筆
	BestTimes []RankedSlot `json:"best_times"`
	// ParticipantCount 有提交過的參與者數，供熱度正規化
	ParticipantCount int `json:"participant_count"`
}

// Aggregate 將全部參與者的可用時段摺疊成 heatmap 與 best-times。
// 純函式：不讀寫任何外部狀態，零參與者回傳空結果。
func Aggregate(participants []*model.Participant) Aggregation {
	heatmap := make(map[string]int)
	ranked := make([]RankedSlot, 0)
	index := make(map[string]int) // slot-key -> ranked 位置

	for _, p := range participants {
		seen := make(map[string]bool) // 同一人重複勾同一格只算一次
		for _, slot := range p.Availability {
			key := slot.Key()
			if seen[key] {
				continue
			}
			seen[key] = true

			heatmap[key]++
			if i, ok := index[key]; ok {
				ranked[i].Count++
			} else {
				index[key] = len(ranked)
				ranked = append(ranked, RankedSlot{Slot: slot, Count: 1})
			}
		}
	}

	// 穩定排序：同票數保留首次出現的相對順序
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > bestTimesLimit {
		ranked = ranked[:bestTimesLimit]
	}

	return Aggregation{
		Heatmap:          heatmap,
		BestTimes:        ranked,
		ParticipantCount: len(participants),
	}
}

// Intensity 渲染用的 0..1 熱度；submitted 為 0 時回傳 0，不做除法
func Intensity(count, submitted int) float64 {
	if submitted == 0 {
		return 0
	}
	return float64(count) / float64(submitted)
}
