package notify

import (
	"context"
	"testing"

	"github.com/jadenzaleski/bible-translations/internal/config"
)

func TestDisabledWhenUnconfigured(t *testing.T) {
	n := New(config.NotifyConfig{})
	if n.Enabled() {
		t.Fatal("notifier should be disabled without configuration")
	}

	// A disabled notifier must be a silent no-op.
	if err := n.BundleReady(context.Background(), "King James Version", "/tmp/kjv.zip"); err != nil {
		t.Fatalf("BundleReady on disabled notifier: %v", err)
	}
}

func TestDisabledWhenPartiallyConfigured(t *testing.T) {
	n := New(config.NotifyConfig{Domain: "mg.example.com", APIKey: "key"})
	if n.Enabled() {
		t.Fatal("notifier should require every Mailgun field")
	}
}
