package mailer

// EmailJob is a rendered-on-demand email: Template names a set of
// <name>.{subject,text,html}.tmpl files and Data feeds them.
type EmailJob struct {
	To       string `json:"to"`
	Template string `json:"template"`
	Data     any    `json:"data,omitempty"`
}
