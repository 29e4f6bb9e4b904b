package service

import (
	"math"
	"testing"

	"github.com/energyledger/internal/db"
)

func TestDayServiceLoadDefaultsAndMigration(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	day := svc.Load("2025-06-01")
	if day.Date != "2025-06-01" || day.Completed || len(day.ActivityCounts) != 0 {
		t.Fatalf("unexpected blank day: %+v", day)
	}

	// 旧形态数据在读取时迁移
	st.Set(db.DayKey("2025-06-02"), map[string]any{
		"date":           "2025-06-02",
		"activityCounts": map[string]int{"walking": 1},
		"activityPoints": map[string]any{"walking": -5},
		"completed":      false,
	})

	migrated := svc.Load("2025-06-02")
	if migrated.LegacyActivityPoints != nil {
		t.Fatal("expected legacy points to be migrated away")
	}
	if got := migrated.ActivityEnergyOverrides["walking"]; got != 5 {
		t.Fatalf("expected migrated override 5, got %v", got)
	}
}

func TestDayServiceLogAndUnlog(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	day, err := svc.Log("2025-06-01", "walking", db.Intentional)
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	if day.ActivityCounts["walking"] != 1 {
		t.Fatalf("expected count 1, got %d", day.ActivityCounts["walking"])
	}

	// 空标记沿用最近一次意图
	day, err = svc.Log("2025-06-01", "walking", "")
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}
	tags := day.ActivityIntentionality["walking"]
	if len(tags) != 2 || tags[0] != db.Intentional || tags[1] != db.Intentional {
		t.Fatalf("unexpected intentionality tags: %v", tags)
	}

	if _, err := svc.Log("2025-06-01", "walking", "sort of"); err != ErrInvalidIntentionality {
		t.Fatalf("expected ErrInvalidIntentionality, got %v", err)
	}

	day = svc.Unlog("2025-06-01", "walking")
	if day.ActivityCounts["walking"] != 1 || len(day.ActivityIntentionality["walking"]) != 1 {
		t.Fatalf("unexpected state after unlog: %+v", day)
	}

	day = svc.Unlog("2025-06-01", "walking")
	if day.ActivityCounts["walking"] != 0 || day.ActivityIntentionality != nil {
		t.Fatalf("expected empty state after final unlog: %+v", day)
	}

	// 归零后再撤销不会产生负数
	day = svc.Unlog("2025-06-01", "walking")
	if day.ActivityCounts["walking"] != 0 {
		t.Fatalf("expected count to stay at 0, got %d", day.ActivityCounts["walking"])
	}
}

func TestDayServiceLogDefaultsToAutomatic(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	day, err := svc.Log("2025-06-01", "scrolling", "")
	if err != nil {
		t.Fatalf("Log returned error: %v", err)
	}

	tags := day.ActivityIntentionality["scrolling"]
	if len(tags) != 1 || tags[0] != db.Automatic {
		t.Fatalf("expected first log to default to automatic, got %v", tags)
	}
}

func TestDayServiceSetOverride(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	value := -5.0
	day, err := svc.SetOverride("2025-06-01", "walking", &value)
	if err != nil {
		t.Fatalf("SetOverride returned error: %v", err)
	}
	if got := day.ActivityEnergyOverrides["walking"]; got != 5 {
		t.Fatalf("expected abs override 5, got %v", got)
	}

	nan := math.NaN()
	if _, err := svc.SetOverride("2025-06-01", "walking", &nan); err != ErrInvalidMagnitude {
		t.Fatalf("expected ErrInvalidMagnitude, got %v", err)
	}

	day, err = svc.SetOverride("2025-06-01", "walking", nil)
	if err != nil {
		t.Fatalf("SetOverride returned error: %v", err)
	}
	if day.ActivityEnergyOverrides != nil {
		t.Fatalf("expected empty overrides to be stripped, got %+v", day.ActivityEnergyOverrides)
	}
}

func TestDayServiceSetUnitAndIntention(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	day := svc.SetUnit("2025-06-01", "walking", "  km  ")
	if day.ActivityUnits["walking"] != "km" {
		t.Fatalf("expected trimmed unit km, got %q", day.ActivityUnits["walking"])
	}

	day = svc.SetUnit("2025-06-01", "walking", "")
	if day.ActivityUnits != nil {
		t.Fatalf("expected empty units to be stripped, got %+v", day.ActivityUnits)
	}

	day = svc.SetIntention("2025-06-01", " protect the morning ")
	if day.Intention != "protect the morning" {
		t.Fatalf("unexpected intention: %q", day.Intention)
	}
}

func TestDayServiceReflectionCloseReset(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewDayService(st)

	day := svc.SetReflection("2025-06-01", db.DayReflection{Energized: "morning walk", Observed: "less doomscrolling"})
	if day.Reflection == nil || day.Reflection.Energized != "morning walk" {
		t.Fatalf("unexpected reflection: %+v", day.Reflection)
	}

	day = svc.SetReflection("2025-06-01", db.DayReflection{})
	if day.Reflection != nil {
		t.Fatalf("expected empty reflection to clear block, got %+v", day.Reflection)
	}

	day = svc.Close("2025-06-01")
	if !day.Completed {
		t.Fatal("expected day to be completed after Close")
	}

	day = svc.Reset("2025-06-01")
	if day.Completed || len(day.ActivityCounts) != 0 || day.Intention != "" {
		t.Fatalf("expected blank day after reset: %+v", day)
	}

	// 重置后的空白记录确实落盘
	reloaded := svc.Load("2025-06-01")
	if reloaded.Completed {
		t.Fatal("expected persisted day to be blank after reset")
	}
}
