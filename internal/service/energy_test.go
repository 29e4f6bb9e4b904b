package service

import (
	"math"
	"testing"

	"github.com/energyledger/internal/db"
)

func floatPtr(v float64) *float64 {
	return &v
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveMagnitudeNeverNegative(t *testing.T) {
	day := db.NewDay("2025-06-01")
	day.ActivityEnergyOverrides = map[string]float64{"walking": -4}

	activity := db.ActivityDefinition{ID: "walking", Label: "Walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(-7)}

	if got := ResolveMagnitude(day, "walking", &activity); got != 4 {
		t.Fatalf("expected override magnitude 4, got %v", got)
	}

	day.ActivityEnergyOverrides = nil
	if got := ResolveMagnitude(day, "walking", &activity); got != 7 {
		t.Fatalf("expected default magnitude 7, got %v", got)
	}

	if got := ResolveMagnitude(day, "walking", nil); got != 0 {
		t.Fatalf("expected zero magnitude without activity, got %v", got)
	}
}

func TestActivityEnergyZeroCount(t *testing.T) {
	day := db.NewDay("2025-06-01")
	activity := db.ActivityDefinition{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(5)}

	if got := ActivityEnergy(day, "walking", &activity); got != 0 {
		t.Fatalf("expected 0 for zero count, got %v", got)
	}

	day.ActivityCounts["walking"] = 3
	zero := db.ActivityDefinition{ID: "walking", Direction: db.DirectionGain}
	if got := ActivityEnergy(day, "walking", &zero); got != 0 {
		t.Fatalf("expected 0 for zero magnitude, got %v", got)
	}
}

func TestActivityEnergyDirectionSign(t *testing.T) {
	day := db.NewDay("2025-06-01")
	day.ActivityCounts["walking"] = 4
	day.ActivityCounts["scrolling"] = 4

	gain := db.ActivityDefinition{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(3)}
	drain := db.ActivityDefinition{ID: "scrolling", Direction: db.DirectionDrain, EnergyMagnitude: floatPtr(3)}

	if got := ActivityEnergy(day, "walking", &gain); got != 12 {
		t.Fatalf("expected +12 for gain activity, got %v", got)
	}
	if got := ActivityEnergy(day, "scrolling", &drain); got != -12 {
		t.Fatalf("expected -12 for drain activity, got %v", got)
	}
}

func TestActivityEnergyIntentionalityWeighting(t *testing.T) {
	day := db.NewDay("2025-06-01")
	day.ActivityCounts["walking"] = 2
	day.ActivityCounts["scrolling"] = 2
	day.ActivityIntentionality = map[string][]string{
		"walking":   {db.Intentional, db.Automatic},
		"scrolling": {db.Intentional, db.Automatic},
	}

	gain := db.ActivityDefinition{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(10)}
	drain := db.ActivityDefinition{ID: "scrolling", Direction: db.DirectionDrain, EnergyMagnitude: floatPtr(10)}

	// 10*1.05 + 10*1.0 = 21
	if got := ActivityEnergy(day, "walking", &gain); !almostEqual(got, 21) {
		t.Fatalf("expected 21 for intentional gain, got %v", got)
	}
	// -(10*0.95 + 10*1.0) = -19.5
	if got := ActivityEnergy(day, "scrolling", &drain); !almostEqual(got, -19.5) {
		t.Fatalf("expected -19.5 for intentional drain, got %v", got)
	}
}

func TestActivityEnergyMismatchedIntentionalityFallsBack(t *testing.T) {
	day := db.NewDay("2025-06-01")
	day.ActivityCounts["walking"] = 3
	day.ActivityIntentionality = map[string][]string{"walking": {db.Intentional}}

	gain := db.ActivityDefinition{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(10)}

	if got := ActivityEnergy(day, "walking", &gain); got != 30 {
		t.Fatalf("expected base 30 for mismatched intentionality, got %v", got)
	}
}

func TestDayEnergyEqualsGainedMinusDrained(t *testing.T) {
	day := db.NewDay("2025-06-01")
	day.ActivityCounts = map[string]int{
		"walking":   3,
		"scrolling": 2,
		"ghost":     5, // 已删除活动的残留计数
	}
	day.ActivityEnergyOverrides = map[string]float64{"ghost": 9}

	activities := []db.ActivityDefinition{
		{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(2)},
		{ID: "scrolling", Direction: db.DirectionDrain, EnergyMagnitude: floatPtr(4)},
	}

	gained := EnergyGained(day, activities)
	drained := EnergyDrained(day, activities)
	net := DayEnergy(day, activities)

	if !almostEqual(gained, 6) {
		t.Fatalf("expected gained 6, got %v", gained)
	}
	if !almostEqual(drained, 8) {
		t.Fatalf("expected drained 8, got %v", drained)
	}
	if !almostEqual(net, gained-drained) {
		t.Fatalf("expected net %v to equal gained-drained %v", net, gained-drained)
	}
}

func TestIsSetupComplete(t *testing.T) {
	day := db.NewDay("2025-06-01")

	// 空目录始终未完成
	if IsSetupComplete(day, nil) {
		t.Fatal("expected incomplete setup for empty catalog")
	}

	activities := []db.ActivityDefinition{
		{ID: "walking", Direction: db.DirectionGain, EnergyMagnitude: floatPtr(2)},
		{ID: "scrolling", Direction: db.DirectionDrain},
	}

	if IsSetupComplete(day, activities) {
		t.Fatal("expected incomplete setup while scrolling has no magnitude")
	}

	day.ActivityEnergyOverrides = map[string]float64{"scrolling": 1}
	if !IsSetupComplete(day, activities) {
		t.Fatal("expected complete setup once every activity resolves a magnitude")
	}
}
