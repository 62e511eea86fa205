package helpers

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestNewESClient(t *testing.T) {
	_, err := NewESClient(nil, "", "")
	assert.Error(t, err)

	c, err := NewESClient([]string{"http://localhost:9200"}, "elastic", "secret")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestRetryOnTimeout(t *testing.T) {
	assert.True(t, retryOnTimeout(nil, fmt.Errorf("dial: %w", timeoutErr{})))
	assert.False(t, retryOnTimeout(nil, errors.New("connection refused")))
	assert.False(t, retryOnTimeout(nil, context.Canceled))
}
