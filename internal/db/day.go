package db

// DayReflection 保存一天结束时的自由文字复盘。
// presence/energy/closingNote 为历史字段，读写时原样保留。
type DayReflection struct {
	Presence    string `json:"presence,omitempty"`
	Energy      string `json:"energy,omitempty"`
	ClosingNote string `json:"closingNote,omitempty"`
	Energized   string `json:"energized,omitempty"`
	Drained     string `json:"drained,omitempty"`
	Observed    string `json:"observed,omitempty"`
}

// DayData 是某个日历日（本地时间 YYYY-MM-DD）的完整记录。
// JSON 字段名与历史持久化数据保持一致（camelCase）。
// LegacyActivityPoints 仅在迁移旧数据时读取，迁移后不再写出。
type DayData struct {
	Date                    string                 `json:"date"`
	Intention               string                 `json:"intention,omitempty"`
	ActivityEnergyOverrides map[string]float64     `json:"activityEnergyOverrides,omitempty"`
	ActivityUnits           map[string]string      `json:"activityUnits,omitempty"`
	ActivityCounts          map[string]int         `json:"activityCounts"`
	ActivityIntentionality  map[string][]string    `json:"activityIntentionality,omitempty"`
	Reflection              *DayReflection         `json:"reflection,omitempty"`
	Completed               bool                   `json:"completed"`
	LegacyActivityPoints    map[string]LooseNumber `json:"activityPoints,omitempty"`
}

// NewDay 返回指定日期的空白记录。
func NewDay(date string) *DayData {
	return &DayData{
		Date:           date,
		ActivityCounts: map[string]int{},
		Completed:      false,
	}
}

// HasAnyActivity 判断当天是否记录过任意一次活动。
func (d *DayData) HasAnyActivity() bool {
	for _, count := range d.ActivityCounts {
		if count > 0 {
			return true
		}
	}
	return false
}

// TotalActivityCount 返回当天所有活动的记录总次数。
func (d *DayData) TotalActivityCount() int {
	total := 0
	for _, count := range d.ActivityCounts {
		total += count
	}
	return total
}
