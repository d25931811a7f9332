package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain_VersionFlags(t *testing.T) {
	for _, flag := range []string{"-v", "-version", "--version", "version"} {
		assert.Equal(t, 0, Main([]string{"arbor", flag}), flag)
	}
}
