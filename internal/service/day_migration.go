package service

import (
	"math"

	"github.com/energyledger/internal/db"
)

// MigrateDay 将可能是历史形态的每日记录升级为当前模型。
// 幂等：重复应用与应用一次结果相同，可安全地在每次读取时执行。
//
// 历史形态在 activityPoints 中直接保存带符号数值（正为获得、负为消耗），
// 当前模型将幅值与方向分离：幅值取绝对值进入 activityEnergyOverrides，
// 方向由活动定义本身决定。已有的 override 优先于历史数据，绝不覆盖。
func MigrateDay(day *db.DayData) *db.DayData {
	if day == nil {
		return nil
	}

	if len(day.LegacyActivityPoints) == 0 {
		day.LegacyActivityPoints = nil
		stripEmptyOverrides(day)
		return day
	}

	overrides := day.ActivityEnergyOverrides
	if overrides == nil {
		overrides = map[string]float64{}
	}

	for activityID, value := range day.LegacyActivityPoints {
		if _, exists := overrides[activityID]; exists {
			continue
		}
		// 非数值的历史数据按缺失处理，避免 NaN 扩散
		if !value.Valid || math.IsNaN(value.Value) {
			continue
		}
		overrides[activityID] = math.Abs(value.Value)
	}

	day.ActivityEnergyOverrides = overrides
	day.LegacyActivityPoints = nil
	stripEmptyOverrides(day)

	return day
}

// stripEmptyOverrides 将空的 override 映射归一化为缺失状态。
func stripEmptyOverrides(day *db.DayData) {
	if day.ActivityEnergyOverrides != nil && len(day.ActivityEnergyOverrides) == 0 {
		day.ActivityEnergyOverrides = nil
	}
}
