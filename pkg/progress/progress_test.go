package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.IsType(t, &Noop{}, New(DisabledConfig()))
	assert.IsType(t, &Noop{}, New(&Config{Type: TypeNone, Enabled: true}))
	assert.IsType(t, &Spinner{}, New(&Config{Type: TypeSpinner, Enabled: true}))
	assert.IsType(t, &Spinner{}, New(nil))
}

func TestNoop(t *testing.T) {
	n := NewNoop()
	assert.False(t, n.IsActive())
	require.NoError(t, n.Start("Loading feed..."))
	assert.True(t, n.IsActive())
	require.NoError(t, n.Update("still loading"))
	require.NoError(t, n.Success("done"))
	assert.False(t, n.IsActive())
}

func TestSpinner_Disabled(t *testing.T) {
	s := NewSpinner(DisabledConfig())
	require.NoError(t, s.Start("x"))
	assert.False(t, s.IsActive())
	assert.NoError(t, s.Stop())
}

func TestSpinner_Lifecycle(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&Config{Type: TypeSpinner, Enabled: true, Writer: &buf})

	require.NoError(t, s.Start("Loading feed..."))
	assert.True(t, s.IsActive())
	assert.Error(t, s.Start("again"), "a running spinner cannot be restarted")

	require.NoError(t, s.Update("Loading more..."))
	require.NoError(t, s.Stop())
	assert.False(t, s.IsActive())
}

func TestManager(t *testing.T) {
	m := NewManager(DisabledConfig())
	assert.False(t, m.Enabled())

	p, err := m.StartProgress("Loading feed...")
	require.NoError(t, err)
	assert.True(t, p.IsActive())

	_, err = m.StartProgress("another")
	assert.Error(t, err, "only one indicator at a time")

	require.NoError(t, m.Stop())
	_, err = m.StartProgress("after stop")
	assert.NoError(t, err)
}
