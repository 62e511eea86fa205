package messaging

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
	"github.com/oksasatya/employee-hierarchy-api/internal/infrastructure/database"
	"github.com/oksasatya/employee-hierarchy-api/pkg/helpers"
)

const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

// EmployeeEvent is the JSON body put on the employee events queue.
type EmployeeEvent struct {
	Type         string     `json:"type"`
	EmployeeID   uuid.UUID  `json:"employeeId"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	IsSupervisor bool       `json:"isSupervisor"`
	SupervisorID *uuid.UUID `json:"supervisorId,omitempty"`
	OccurredAt   time.Time  `json:"occurredAt"`
}

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// EmployeeEventPublisher turns committed employee changes into queue messages.
// Publishing is best effort: failures are logged, the commit already happened.
type EmployeeEventPublisher struct {
	pub     Publisher
	clock   helpers.Clock
	logger  *logrus.Logger
	timeout time.Duration
}

func NewEmployeeEventPublisher(pub Publisher, clock helpers.Clock, logger *logrus.Logger) *EmployeeEventPublisher {
	if clock == nil {
		clock = helpers.SystemClock{}
	}
	return &EmployeeEventPublisher{pub: pub, clock: clock, logger: logger, timeout: 3 * time.Second}
}

func eventType(op database.Operation) string {
	switch op {
	case database.OpAdded:
		return EmployeeCreated
	case database.OpRemoved:
		return EmployeeDeleted
	default:
		return EmployeeUpdated
	}
}

func NewEmployeeEvent(op database.Operation, e *entity.Employee, now time.Time) EmployeeEvent {
	at := now
	switch {
	case op == database.OpAdded:
		at = e.CreatedAt
	case op == database.OpModified && e.UpdatedAt != nil:
		at = *e.UpdatedAt
	}
	return EmployeeEvent{
		Type:         eventType(op),
		EmployeeID:   e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		IsSupervisor: e.IsSupervisor,
		SupervisorID: e.SupervisorID,
		OccurredAt:   at,
	}
}

func (p *EmployeeEventPublisher) AfterCommit(ctx context.Context, changes []database.Change) {
	for _, c := range changes {
		e, ok := c.Entity.(*entity.Employee)
		if !ok {
			continue
		}
		ev := NewEmployeeEvent(c.Op, e, p.clock.Now())
		cctx, cancel := context.WithTimeout(ctx, p.timeout)
		err := p.pub.PublishJSON(cctx, ev.Type, ev)
		cancel()
		if err != nil && p.logger != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"employee_id": e.ID,
				"event":       ev.Type,
			}).Warn("publish employee event failed")
		}
	}
}
