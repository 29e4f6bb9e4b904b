package db

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// 活动方向：获得能量或消耗能量。
// 历史数据中使用 good/bad，读取时统一归一化为 gain/drain。
const (
	DirectionGain  = "gain"
	DirectionDrain = "drain"

	legacyDirectionGood = "good"
	legacyDirectionBad  = "bad"
)

// 打卡意图标记，按记录顺序逐次追加。
const (
	Intentional = "intentional"
	Automatic   = "automatic"
)

// ActivityDefinition 描述一个用户自定义的活动（习惯）。
// JSON 字段名与历史持久化数据保持一致（camelCase），
// LegacyPoints 仅用于读取旧数据，归一化后不再写出。
type ActivityDefinition struct {
	ID              string       `json:"id"`
	Label           string       `json:"label"`
	Direction       string       `json:"type"`
	PairID          string       `json:"pairId,omitempty"`
	EnergyMagnitude *float64     `json:"energyMagnitude,omitempty"`
	Unit            string       `json:"unit,omitempty"`
	Intensity       string       `json:"intensity,omitempty"`
	LegacyPoints    *LooseNumber `json:"points,omitempty"`
}

// NormalizeDirection 将任意方向取值映射为 gain/drain，未知值按 gain 处理。
func NormalizeDirection(direction string) string {
	switch strings.TrimSpace(strings.ToLower(direction)) {
	case DirectionDrain, legacyDirectionBad:
		return DirectionDrain
	default:
		return DirectionGain
	}
}

// LooseNumber 宽松解析历史数据里的数值字段：
// 接受 JSON 数字或数字字符串，其余形态视为缺失而不报错。
type LooseNumber struct {
	Value float64
	Valid bool
}

// UnmarshalJSON 实现宽松数值解析。
func (n *LooseNumber) UnmarshalJSON(data []byte) error {
	n.Value = 0
	n.Valid = false

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var number float64
	if err := json.Unmarshal(trimmed, &number); err == nil {
		n.Value = number
		n.Valid = true
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			n.Value = parsed
			n.Valid = true
		}
	}

	return nil
}

// MarshalJSON 将无效值写出为 null，正常值写出为数字。
func (n LooseNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
