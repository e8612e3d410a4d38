package system

import (
	"strings"
	"testing"

	"github.com/julianstephens/paytick/internal/storage"
)

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, out := newTestContext(t, storage.NewMemoryStore())
	s := ctx.Settings.Settings()
	s.NotificationsEnabled = true
	if err := ctx.Settings.Save(s); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	cmd := &NotifyCmd{Message: "Shift complete", DryRun: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "[DryRun] Shift complete") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestNotifyCmd_Disabled(t *testing.T) {
	ctx, out := newTestContext(t, storage.NewMemoryStore())
	s := ctx.Settings.Settings()
	s.NotificationsEnabled = false
	if err := ctx.Settings.Save(s); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	if err := (&NotifyCmd{Message: "hi"}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if !strings.Contains(out.String(), "disabled") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
