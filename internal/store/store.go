package store

import (
	"encoding/json"

	"github.com/energyledger/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 是建立在键值表之上的本地存储适配器。
// 这里的数据属于尽力而为的个人数据：读取/解析失败一律视为无数据，
// 写入失败静默忽略，不重试也不向上层暴露错误。
type Store struct {
	db *gorm.DB
}

// New 构造 Store。
func New(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Get 读取并反序列化 key 对应的值到 dst。
// 键不存在、读取失败或 JSON 非法时返回 false，dst 保持不变或为零值。
func (s *Store) Get(key string, dst any) bool {
	if s == nil || s.db == nil {
		return false
	}

	var entry db.KVEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(entry.Value), dst); err != nil {
		return false
	}

	return true
}

// Set 序列化 value 并以 upsert 方式写入 key，失败时静默忽略。
func (s *Store) Set(key string, value any) {
	if s == nil || s.db == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}

	entry := db.KVEntry{Key: key, Value: string(raw)}
	_ = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      string(raw),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&entry).Error
}

// Remove 删除 key，键不存在或删除失败时静默忽略。
func (s *Store) Remove(key string) {
	if s == nil || s.db == nil {
		return
	}

	_ = s.db.Unscoped().Where("key = ?", key).Delete(&db.KVEntry{}).Error
}

// Keys 返回匹配前缀的全部键，按键名升序。读取失败时返回空列表。
func (s *Store) Keys(prefix string) []string {
	if s == nil || s.db == nil {
		return nil
	}

	var keys []string
	err := s.db.Model(&db.KVEntry{}).
		Where("key LIKE ?", prefix+"%").
		Order("key ASC").
		Pluck("key", &keys).Error
	if err != nil {
		return nil
	}

	return keys
}
