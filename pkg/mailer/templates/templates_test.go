package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_EmployeeCreated(t *testing.T) {
	at := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	data := NewEmailData("Acme", "Ann <Lee>", "ann@acme.test", WithTime(at), WithSupervisorRole(true))

	subject, text, html, err := Render(EmployeeCreated, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acme, Ann <Lee>", subject)
	assert.Contains(t, text, "05 March 2024, 09:30")
	assert.Contains(t, text, "You are registered as a supervisor.")
	assert.Contains(t, html, "Ann &lt;Lee&gt;")
}

func TestRender_DefaultsCompanyName(t *testing.T) {
	subject, text, _, err := Render(EmployeeCreated, NewEmailData("", "Bo", "bo@acme.test"))
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the company, Bo", subject)
	assert.Contains(t, text, "The team")
	assert.NotContains(t, text, "supervisor")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("missing", EmailData{})
	assert.Error(t, err)
}

func TestDefaultFn(t *testing.T) {
	assert.Equal(t, "x", defaultFn("x", "  "))
	assert.Equal(t, "x", defaultFn("x", nil))
	assert.Equal(t, "x", defaultFn("x", 0))
	assert.Equal(t, 7, defaultFn("x", 7))
	assert.Equal(t, "v", defaultFn("x", "v"))
}
