package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/employee-hierarchy-api/internal/domain/entity"
)

type EmployeeResponse struct {
	ID                uuid.UUID  `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	IsSupervisor      bool       `json:"isSupervisor"`
	SupervisorID      *uuid.UUID `json:"supervisorId"`
	SupervisorName    *string    `json:"supervisorName"`
	TotalReportsCount int        `json:"totalReportsCount"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt"`
}

func toEmployeeResponse(e *entity.Employee) EmployeeResponse {
	r := EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		Email:        e.Email,
		IsSupervisor: e.IsSupervisor,
		SupervisorID: e.SupervisorID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Supervisor != nil {
		name := e.Supervisor.FullName()
		r.SupervisorName = &name
	}
	return r
}

func toEmployeeResponses(list []*entity.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out
}
