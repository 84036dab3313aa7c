// Copyright (c) 2025 The Zenith Note Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/praburajasekaran/zenith-note/internal/ui/styles"
)

func TestNewToast_Durations(t *testing.T) {
	if d := NewToast(ToastSuccess, "ok", "").Duration; d != DefaultToastDuration {
		t.Errorf("success duration = %v, want %v", d, DefaultToastDuration)
	}
	if d := NewToast(ToastInfo, "fyi", "").Duration; d != DefaultToastDuration {
		t.Errorf("info duration = %v, want %v", d, DefaultToastDuration)
	}
	if d := NewToast(ToastError, "bad", "").Duration; d != ErrorToastDuration {
		t.Errorf("error duration = %v, want %v", d, ErrorToastDuration)
	}
}

func TestToastExpiredAt(t *testing.T) {
	toast := NewToast(ToastInfo, "Test", "")

	if toast.ExpiredAt(toast.CreatedAt) {
		t.Error("Fresh toast should not be expired")
	}
	if !toast.ExpiredAt(toast.CreatedAt.Add(toast.Duration)) {
		t.Error("Toast should be expired after its duration")
	}
}

func TestToastManager(t *testing.T) {
	manager := NewToastManager()

	if manager.HasToasts() {
		t.Error("New manager should have no toasts")
	}

	id1 := manager.Add(NewToast(ToastSuccess, "first", ""))
	id2 := manager.Add(NewToast(ToastInfo, "second", ""))

	if id1 == id2 {
		t.Errorf("ids should differ, both %d", id1)
	}

	toasts := manager.Toasts()
	if len(toasts) != 2 {
		t.Fatalf("Expected 2 toasts, got %d", len(toasts))
	}
	if toasts[0].Title != "second" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Title)
	}

	manager.Dismiss(id1)
	toasts = manager.Toasts()
	if len(toasts) != 1 || toasts[0].ID != id2 {
		t.Errorf("Dismiss left %+v", toasts)
	}
}

func TestToastManager_Cap(t *testing.T) {
	manager := NewToastManager()
	for i := 0; i < MaxToasts+2; i++ {
		manager.Add(NewToast(ToastInfo, "t", ""))
	}

	if n := len(manager.Toasts()); n != MaxToasts {
		t.Errorf("Expected %d toasts, got %d", MaxToasts, n)
	}
}

func TestToastManager_Tick(t *testing.T) {
	manager := NewToastManager()
	start := time.Now()

	short := NewToast(ToastSuccess, "short", "")
	short.CreatedAt = start
	manager.Add(short)

	long := NewToast(ToastError, "long", "")
	long.CreatedAt = start
	manager.Add(long)

	if !manager.Tick(start.Add(DefaultToastDuration)) {
		t.Fatal("error toast should outlive the success toast")
	}
	toasts := manager.Toasts()
	if len(toasts) != 1 || toasts[0].Title != "long" {
		t.Errorf("after first tick: %+v", toasts)
	}

	if manager.Tick(start.Add(ErrorToastDuration)) {
		t.Error("all toasts should have expired")
	}
}

func TestRenderToast(t *testing.T) {
	theme := styles.NewTheme(true)

	out := RenderToast(theme, NewToast(ToastSuccess, "Vault Connected", "Zenith is now connected."), 80)
	if !strings.Contains(out, "Vault Connected") {
		t.Errorf("missing title in %q", out)
	}
	if !strings.Contains(out, styles.StatusIndicators.Success) {
		t.Errorf("missing indicator in %q", out)
	}

	out = RenderToast(theme, NewToast(ToastError, "Failed", ""), 80)
	if !strings.Contains(out, styles.StatusIndicators.Error) {
		t.Errorf("missing error indicator in %q", out)
	}
}

func TestRenderToastStack(t *testing.T) {
	theme := styles.NewTheme(false)

	if out := RenderToastStack(theme, nil, 80); out != "" {
		t.Errorf("empty stack should render nothing, got %q", out)
	}

	out := RenderToastStack(theme, []Toast{
		NewToast(ToastInfo, "one", ""),
		NewToast(ToastInfo, "two", ""),
	}, 80)
	if strings.Index(out, "one") > strings.Index(out, "two") {
		t.Error("stack should keep the given order")
	}
}
