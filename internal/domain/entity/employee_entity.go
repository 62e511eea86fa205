package entity

import (
	"strings"

	"github.com/google/uuid"
)

// Employee is a node of the reporting hierarchy. SupervisorID points to another
// employee; Supervisor is only populated when explicitly preloaded.
type Employee struct {
	Base
	FirstName    string     `gorm:"size:100;not null"`
	LastName     string     `gorm:"size:100;not null"`
	Email        string     `gorm:"size:100;not null;uniqueIndex"`
	IsSupervisor bool       `gorm:"not null;default:false"`
	SupervisorID *uuid.UUID `gorm:"type:uuid;index"`
	Supervisor   *Employee  `gorm:"foreignKey:SupervisorID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Employee) TableName() string { return "employees" }

func NewEmployee(firstName, lastName, email string, isSupervisor bool, supervisorID *uuid.UUID) *Employee {
	e := &Employee{Base: Base{ID: NewID()}}
	e.Update(firstName, lastName, email, isSupervisor, supervisorID)
	return e
}

// Update replaces every mutable field.
func (e *Employee) Update(firstName, lastName, email string, isSupervisor bool, supervisorID *uuid.UUID) {
	e.FirstName = strings.TrimSpace(firstName)
	e.LastName = strings.TrimSpace(lastName)
	e.Email = strings.TrimSpace(email)
	e.IsSupervisor = isSupervisor
	if supervisorID != nil {
		id := *supervisorID
		e.SupervisorID = &id
	} else {
		e.SupervisorID = nil
	}
	if e.Supervisor != nil && (e.SupervisorID == nil || e.Supervisor.ID != *e.SupervisorID) {
		e.Supervisor = nil
	}
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ReportsTo reports whether id is the direct supervisor of e.
func (e *Employee) ReportsTo(id uuid.UUID) bool {
	return e.SupervisorID != nil && *e.SupervisorID == id
}
