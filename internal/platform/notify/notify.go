package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ErrDeliveryFailed is returned when the mail provider rejects a message.
var ErrDeliveryFailed = errors.New("notification delivery failed")

// Notifier is told when a task is assigned to a user.
type Notifier interface {
	TaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error
}

// mailSender is the subset of *sendgrid.Client used for delivery.
type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier emails the assignee through SendGrid.
type SendGridNotifier struct {
	client  mailSender
	from    *mail.Email
	timeout time.Duration
	logger  *slog.Logger
}

var _ Notifier = (*SendGridNotifier)(nil)

// New returns a SendGridNotifier when an API key is configured and a
// NoopNotifier otherwise.
func New(cfg config.NotifyConfig, logger *slog.Logger) Notifier {
	if cfg.SendGridAPIKey == "" {
		return NoopNotifier{}
	}
	return NewSendGridNotifier(sendgrid.NewSendClient(cfg.SendGridAPIKey), cfg, logger)
}

// NewSendGridNotifier creates a notifier over client.
func NewSendGridNotifier(client mailSender, cfg config.NotifyConfig, logger *slog.Logger) *SendGridNotifier {
	if client == nil {
		// ALLOW-PANIC: constructor invariant, wiring bug
		panic("NewSendGridNotifier: client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SendGridNotifier{
		client:  client,
		from:    mail.NewEmail(cfg.FromName, cfg.FromEmail),
		timeout: timeout,
		logger:  logger.With("component", "sendgrid_notifier"),
	}
}

// TaskAssigned implements Notifier.
func (n *SendGridNotifier) TaskAssigned(ctx context.Context, assignee *domain.User, task *domain.Task) error {
	if assignee == nil || task == nil {
		return fmt.Errorf("%w: missing assignee or task", ErrDeliveryFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	subject, plain, body := assignmentContent(task)
	msg := mail.NewSingleEmail(n.from, subject, mail.NewEmail("", assignee.Email), plain, body)

	resp, err := n.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: provider returned status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	logger.FromContextOrDefault(ctx, n.logger).Debug("assignment email sent",
		"task_id", task.ID,
		"assignee_id", assignee.ID,
		"status_code", resp.StatusCode)
	return nil
}

// assignmentContent renders the subject and bodies of an assignment email.
func assignmentContent(task *domain.Task) (subject, plain, body string) {
	subject = "New task assigned: " + task.Title

	var b strings.Builder
	fmt.Fprintf(&b, "You have been assigned task #%d: %s\n", task.ID, task.Title)
	if task.Description != nil && *task.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", *task.Description)
	}
	if task.DueDate != nil {
		fmt.Fprintf(&b, "\nDue: %s\n", task.DueDate.UTC().Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Status: %s\n", task.Status)
	plain = b.String()

	body = "<p>" + strings.ReplaceAll(html.EscapeString(plain), "\n", "<br>") + "</p>"
	return subject, plain, body
}

// NoopNotifier discards notifications.
type NoopNotifier struct{}

// TaskAssigned implements Notifier.
func (NoopNotifier) TaskAssigned(context.Context, *domain.User, *domain.Task) error { return nil }
