// Package notify sends an optional email when a bundle export completes.
// A full translation download is on the order of 1200 passage requests, so
// long runs are usually left unattended.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v5"
	"github.com/sethvargo/go-retry"

	"github.com/jadenzaleski/bible-translations/internal/config"
)

// Notifier sends completion mail through Mailgun. The zero state (missing
// configuration) disables it.
type Notifier struct {
	cfg config.NotifyConfig
}

// New creates a notifier from configuration. The notifier is inert unless
// every Mailgun field is set.
func New(cfg config.NotifyConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Enabled reports whether sending is configured.
func (n *Notifier) Enabled() bool { return n.cfg.Enabled() }

// BundleReady emails the configured recipient that a bundle finished. It is
// a no-op when notification is not configured.
func (n *Notifier) BundleReady(ctx context.Context, translationName, bundlePath string) error {
	if !n.Enabled() {
		return nil
	}

	mg := mailgun.NewMailgun(n.cfg.APIKey)

	subject := fmt.Sprintf("Translation bundle ready: %s", translationName)
	body := fmt.Sprintf(`
<html>
<body>
	<p>The export of <b>%s</b> has completed.</p>
	<p>Bundle: <code>%s</code></p>
</body>
</html>
`, translationName, bundlePath)

	message := mailgun.NewMessage(n.cfg.Domain, n.cfg.Sender, subject, "")
	message.AddRecipient(n.cfg.Recipient)
	message.SetHTML(body)

	backoff := retry.WithMaxRetries(4, retry.NewExponential(time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if _, err := mg.Send(sendCtx, message); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("send completion email: %w", err)
	}

	slog.Info("sent completion email", "translation", translationName, "recipient", n.cfg.Recipient)
	return nil
}
