package primitives

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	e := Linear()
	assert.InDelta(t, 0.0, e.Apply(0, 1), 1e-10)
	assert.InDelta(t, 0.5, e.Apply(0.5, 1), 1e-10)
	assert.InDelta(t, 1.0, e.Apply(1, 1), 1e-10)
}

func TestEaseIn(t *testing.T) {
	e := EaseIn()
	assert.InDelta(t, 0.0, e.Apply(0, 1), 1e-10)
	assert.InDelta(t, 0.25, e.Apply(0.5, 1), 1e-10)
	assert.InDelta(t, 1.0, e.Apply(1, 1), 1e-10)
}

func TestEaseOut(t *testing.T) {
	e := EaseOut()
	assert.InDelta(t, 0.75, e.Apply(0.5, 1), 1e-10)
}

func TestEaseInOut(t *testing.T) {
	e := EaseInOut()
	assert.InDelta(t, 0.5, e.Apply(0.5, 1), 1e-10)
}

func TestCubicBezierEndpoints(t *testing.T) {
	e := CSSEase()
	assert.Less(t, e.Apply(0, 1), 0.01)
	assert.InDelta(t, 1.0, e.Apply(1, 1), 0.01)
}

func TestSpringEndpoints(t *testing.T) {
	e := SpringDefault()
	assert.Less(t, e.Apply(0, 1), 0.01)
	assert.InDelta(t, 1.0, e.Apply(1, 1), 0.05)
}

func TestDerivativeLinear(t *testing.T) {
	e := Linear()
	assert.InDelta(t, 1.0, e.Derivative(0.5, 1), 1e-10)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Linear", Linear().DisplayName())
	assert.Equal(t, "Spring (Smooth)", SpringDefault().DisplayName())
	assert.True(t, SpringDefault().IsSpring())
	assert.False(t, Linear().IsSpring())
}

func TestEasingJSONRoundtrip(t *testing.T) {
	curves := []EasingCurve{Linear(), EaseIn(), CSSEase(), SpringDefault()}
	for _, c := range curves {
		b, err := json.Marshal(c)
		require.NoError(t, err)
		var decoded EasingCurve
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, c, decoded)
	}
}
