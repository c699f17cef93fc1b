// internal/service/email/notify.go
package email

import (
	"fmt"
	"html"
	"strings"

	quotedomain "github.com/kubilayakkiz/wawainteriorsNL/internal/domain/quote"

	"go.uber.org/zap"
)

// Sender is the outbound mail dependency of the notifier.
type Sender interface {
	Send(to, subject, bodyHTML string, attachment *Attachment) error
}

// QuoteNotification carries the quote form fields into the notification
// email sent to the studio.
type QuoteNotification struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	Location    string
	ProjectArea string
	ProjectType string
	Budget      string
	Message     string

	Attachment *Attachment
}

// RecipientResult records the delivery outcome for one recipient.
type RecipientResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// NotifyResult aggregates per-recipient outcomes. Success means at least
// one recipient got the email.
type NotifyResult struct {
	Success bool              `json:"success"`
	Results []RecipientResult `json:"results"`
}

// QuoteNotifier fans a quote notification out to the configured studio
// inboxes. The caller treats any outcome, including total failure, as
// non-blocking: a lost notification never rolls back a persisted quote.
type QuoteNotifier struct {
	sender     Sender
	recipients []string
	logger     *zap.Logger
}

func NewQuoteNotifier(sender Sender, recipients []string, logger *zap.Logger) *QuoteNotifier {
	return &QuoteNotifier{
		sender:     sender,
		recipients: recipients,
		logger:     logger,
	}
}

// NotifyQuoteReceived sends the notification to every recipient and
// collects per-recipient results.
func (n *QuoteNotifier) NotifyQuoteReceived(q QuoteNotification) NotifyResult {
	subject := fmt.Sprintf("New Quote Request from %s", firstNonEmpty(q.Name, q.Email))
	body := buildQuoteBody(q)

	result := NotifyResult{Results: make([]RecipientResult, 0, len(n.recipients))}
	for _, recipient := range n.recipients {
		if err := n.sender.Send(recipient, subject, body, q.Attachment); err != nil {
			n.logger.Warn("quote notification failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err),
			)
			result.Results = append(result.Results, RecipientResult{
				Recipient: recipient,
				Error:     err.Error(),
			})
			continue
		}

		result.Results = append(result.Results, RecipientResult{
			Recipient: recipient,
			Success:   true,
		})
		result.Success = true
	}

	if !result.Success {
		n.logger.Error("quote notification failed for all recipients",
			zap.String("customer_email", q.Email),
		)
	}

	return result
}

func buildQuoteBody(q QuoteNotification) string {
	projectType := q.ProjectType
	if label, ok := quotedomain.ProjectTypeLabels[q.ProjectType]; ok {
		projectType = label
	}

	var b strings.Builder
	b.WriteString("<h2>New Quote Request</h2>")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value)))
	}

	row("Name", q.Name)
	row("Email", q.Email)
	row("Phone", q.Phone)
	row("Company", q.Company)
	row("Location", q.Location)
	if q.ProjectArea != "" {
		row("Project Area", q.ProjectArea+" m²")
	}
	row("Project Type", projectType)
	row("Budget", q.Budget)

	if q.Message != "" {
		b.WriteString("<p><strong>Detailed Info &amp; Requests:</strong></p>")
		b.WriteString("<p>" + strings.ReplaceAll(html.EscapeString(q.Message), "\n", "<br/>") + "</p>")
	}

	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
