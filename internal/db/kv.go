package db

import "gorm.io/gorm"

// KVEntry 以键值对形式存储应用的全部本地数据。
// 值统一为 JSON 文本，逻辑键的格式见下方常量。
type KVEntry struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (KVEntry) TableName() string {
	return "kv_entries"
}

const (
	// KeyActivities 存储用户定义的活动列表。
	KeyActivities = "user:activities"
	// KeyTheme 存储界面主题（light/dark）。
	KeyTheme = "app:theme"
	// DayKeyPrefix 为每日记录键的前缀，完整键形如 day:2025-01-31。
	DayKeyPrefix = "day:"
)

// DayKey 返回指定日期（YYYY-MM-DD）对应的存储键。
func DayKey(date string) string {
	return DayKeyPrefix + date
}
