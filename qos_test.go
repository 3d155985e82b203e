package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQoSValid(t *testing.T) {
	assert.True(t, QoSAtMostOnce.Valid())
	assert.True(t, QoSAtLeastOnce.Valid())
	assert.True(t, QoSExactlyOnce.Valid())
	assert.False(t, QoS(3).Valid())
	assert.False(t, QoS(255).Valid())
}

func TestQoSString(t *testing.T) {
	assert.Equal(t, "at-most-once", QoSAtMostOnce.String())
	assert.Equal(t, "at-least-once", QoSAtLeastOnce.String())
	assert.Equal(t, "exactly-once", QoSExactlyOnce.String())
	assert.Equal(t, "invalid", QoS(3).String())
}
