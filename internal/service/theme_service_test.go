package service

import (
	"testing"
)

func TestThemeServiceDefaultsToLight(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewThemeService(st)
	if got := svc.Get(); got != ThemeLight {
		t.Fatalf("expected light default, got %s", got)
	}
}

func TestThemeServiceSetAndValidate(t *testing.T) {
	st, cleanup := setupTestStore(t)
	defer cleanup()

	svc := NewThemeService(st)

	theme, err := svc.Set(" Dark ")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if theme != ThemeDark {
		t.Fatalf("expected dark, got %s", theme)
	}
	if got := svc.Get(); got != ThemeDark {
		t.Fatalf("expected persisted dark, got %s", got)
	}

	if _, err := svc.Set("sepia"); err != ErrInvalidTheme {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
}
