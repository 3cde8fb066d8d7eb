package logging

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Parallel()

	prod, err := New(true, false)
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := New(false, true)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))

	dev, err = New(false, false)
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel), "development config logs debug")
}

func TestNopReporter(t *testing.T) {
	t.Parallel()
	var r Reporter = NopReporter{}
	assert.NotPanics(t, func() {
		r.Report(httptest.NewRequest("GET", "/", nil), errors.New("boom"), map[string]any{"uid": "u1"})
	})
}
