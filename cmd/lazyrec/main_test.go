package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandHasExpectedSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["record"])
	assert.True(t, names["generate"])
	assert.True(t, names["export"])
	assert.True(t, names["project"])
}
