package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func eventBody(t *testing.T, typ string) []byte {
	t.Helper()
	b, err := json.Marshal(EmployeeEvent{
		Type:         typ,
		EmployeeID:   uuid.New(),
		FirstName:    "Omar",
		LastName:     "Haddad",
		Email:        "omar@x.io",
		IsSupervisor: true,
		OccurredAt:   time.Date(2024, 2, 3, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return b
}

func TestNotifier_CreatedSendsWelcome(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, "Acme", quietLogger())

	assert.Equal(t, Ack, n.Handle(context.Background(), eventBody(t, EmployeeCreated)))
	require.Len(t, s.sent, 1)
	m := s.sent[0]
	assert.Equal(t, "omar@x.io", m.to)
	assert.Equal(t, "Welcome to Acme, Omar Haddad", m.subject)
	assert.Contains(t, m.text, "03 February 2024, 10:30")
	assert.Contains(t, m.text, "You are registered as a supervisor.")
	assert.Contains(t, m.html, "<h2>Welcome, Omar Haddad</h2>")
}

func TestNotifier_Updated(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, "", quietLogger())

	assert.Equal(t, Ack, n.Handle(context.Background(), eventBody(t, EmployeeUpdated)))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "Your employee record was updated", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "The team")
}

func TestNotifier_Verdicts(t *testing.T) {
	s := &fakeSender{}
	n := NewNotifier(s, "Acme", quietLogger())
	ctx := context.Background()

	assert.Equal(t, Ack, n.Handle(ctx, eventBody(t, EmployeeDeleted)))
	assert.Equal(t, Drop, n.Handle(ctx, []byte("{not json")))
	assert.Empty(t, s.sent)

	s.err = errors.New("mailgun unavailable")
	assert.Equal(t, Retry, n.Handle(ctx, eventBody(t, EmployeeCreated)))
	assert.Equal(t, "retry", Retry.String())
}

func TestSettle(t *testing.T) {
	cases := []struct {
		name        string
		verdict     Verdict
		redelivered bool
		want        Settlement
	}{
		{"ack", Ack, false, Settlement{Ack: true}},
		{"first failure is requeued after a delay", Retry, false, Settlement{Requeue: true, Delay: RetryDelay}},
		{"second failure is dead-lettered", Retry, true, Settlement{}},
		{"drop is dead-lettered", Drop, false, Settlement{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Settle(tc.verdict, tc.redelivered))
		})
	}
}
