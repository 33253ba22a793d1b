package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsListing(t *testing.T) {
	cmd := builtinsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.Run(cmd, nil)

	listing := out.String()
	assert.Contains(t, listing, "fma")
	assert.Contains(t, listing, "arity=3")
	assert.Contains(t, listing, "umulhi")
	assert.Contains(t, listing, "unrestricted")
}

func TestVersion(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.Run(cmd, nil)
	require.Contains(t, out.String(), version)
}
