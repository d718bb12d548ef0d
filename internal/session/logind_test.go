package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input string
		want  Operation
		ok    bool
	}{
		{"logind:poweroff", OpPowerOff, true},
		{"logind:reboot", OpReboot, true},
		{"logind:suspend", OpSuspend, true},
		{"logind:hibernate", OpHibernate, true},
		{"logind:hybrid-sleep", OpHybridSleep, true},
		{"logind:lock", OpLock, true},
		{"logind: suspend", OpSuspend, true},
		{"  logind:suspend  ", OpSuspend, true},
		{"logind:halt", "", false},
		{"logind:", "", false},
		{"systemctl suspend", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, ok := ParseAction(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, op)
		})
	}
}

func TestMethodNamesCoverAllManagerOperations(t *testing.T) {
	// Lock goes through the session object instead of the manager.
	for _, op := range []Operation{OpPowerOff, OpReboot, OpSuspend, OpHibernate, OpHybridSleep} {
		names, ok := methodNames[op]
		assert.True(t, ok, "missing method pair for %s", op)
		assert.NotEmpty(t, names[0])
		assert.NotEmpty(t, names[1])
	}

	_, ok := methodNames[OpLock]
	assert.False(t, ok)
}
