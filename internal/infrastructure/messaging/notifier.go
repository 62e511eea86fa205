package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/pkg/mailer"
	mailtpl "github.com/oksasatya/employee-hierarchy-api/pkg/mailer/templates"
)

// Sender is satisfied by mailer.Mailgun.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Verdict tells the consumer how to settle a delivery.
type Verdict int

const (
	Ack Verdict = iota
	Drop
	Retry
)

// RetryDelay is how long a failed delivery waits before it is requeued.
const RetryDelay = 5 * time.Second

// Settlement is the broker acknowledgement for one delivery.
type Settlement struct {
	Ack     bool
	Requeue bool
	Delay   time.Duration
}

// Settle maps a verdict to a settlement. A failed send is requeued once after
// RetryDelay; if the redelivery fails too it goes to the dead letter queue.
func Settle(v Verdict, redelivered bool) Settlement {
	switch {
	case v == Ack:
		return Settlement{Ack: true}
	case v == Retry && !redelivered:
		return Settlement{Requeue: true, Delay: RetryDelay}
	}
	return Settlement{}
}

// Notifier turns employee events into emails for the affected employee.
type Notifier struct {
	sender      Sender
	companyName string
	logger      *logrus.Logger
	timeout     time.Duration
}

func NewNotifier(sender Sender, companyName string, logger *logrus.Logger) *Notifier {
	return &Notifier{sender: sender, companyName: companyName, logger: logger, timeout: 15 * time.Second}
}

// EmailJobFor maps an event to an email. Deletions produce no email.
func (n *Notifier) EmailJobFor(ev EmployeeEvent) (mailer.EmailJob, bool) {
	var tpl string
	switch ev.Type {
	case EmployeeCreated:
		tpl = mailtpl.EmployeeCreated
	case EmployeeUpdated:
		tpl = mailtpl.EmployeeUpdated
	default:
		return mailer.EmailJob{}, false
	}
	if strings.TrimSpace(ev.Email) == "" {
		return mailer.EmailJob{}, false
	}
	name := strings.TrimSpace(ev.FirstName + " " + ev.LastName)
	return mailer.EmailJob{
		To:       ev.Email,
		Template: tpl,
		Data: mailtpl.NewEmailData(n.companyName, name, ev.Email,
			mailtpl.WithTime(ev.OccurredAt),
			mailtpl.WithSupervisorRole(ev.IsSupervisor),
		),
	}, true
}

// Handle processes one message body. Malformed messages and template errors are
// dropped; send failures are retried.
func (n *Notifier) Handle(ctx context.Context, body []byte) Verdict {
	var ev EmployeeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		n.logger.WithError(err).Warn("bad employee event")
		return Drop
	}
	job, ok := n.EmailJobFor(ev)
	if !ok {
		return Ack
	}
	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		n.logger.WithError(err).WithField("template", job.Template).Error("render failed")
		return Drop
	}

	c, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()
	if err := n.sender.Send(c, job.To, subject, text, html); err != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{
			"employee_id": ev.EmployeeID,
			"event":       ev.Type,
		}).Warn("send failed")
		return Retry
	}
	n.logger.WithFields(logrus.Fields{
		"employee_id": ev.EmployeeID,
		"event":       ev.Type,
	}).Info("notification sent")
	return Ack
}

func (v Verdict) String() string {
	switch v {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}
