package templates

import "time"

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSupervisorRole(isSupervisor bool) Option {
	return func(d *EmailData) { d.IsSupervisor = isSupervisor }
}

// NewEmailData fills the common fields, then applies opts.
func NewEmailData(companyName, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:        name,
		Email:       email,
		CompanyName: companyName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
