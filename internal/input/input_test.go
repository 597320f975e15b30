package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonName(t *testing.T) {
	assert.Equal(t, "left", buttonName(1))
	assert.Equal(t, "right", buttonName(2))
	assert.Equal(t, "middle", buttonName(3))
	assert.Equal(t, "left", buttonName(9))
}

func TestNewHookMonitorStartsEmpty(t *testing.T) {
	m := NewHookMonitor()
	assert.False(t, m.running)
	assert.Empty(t, m.positions)
}

func TestStopMonitoringWithoutStartIsNoop(t *testing.T) {
	m := NewHookMonitor()
	rec, err := m.StopMonitoring()
	assert.NoError(t, err)
	assert.Empty(t, rec.Positions)
}
