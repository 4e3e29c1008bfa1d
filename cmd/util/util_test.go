package util

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parthalab/krakensync/pkg/errors"
)

func TestExitCode(t *testing.T) {
	childErr := exec.Command("sh", "-c", "exit 12").Run()
	require.Error(t, childErr)

	tests := []struct {
		name string
		err  error
		exp  int
	}{
		{
			name: "Plain",
			err:  errors.New("boom"),
			exp:  1,
		},
		{
			name: "ChildExit",
			err:  childErr,
			exp:  12,
		},
		{
			name: "WrappedChildExit",
			err:  errors.WithContext(childErr, "sync"),
			exp:  12,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, ExitCode(test.err))
		})
	}
}
