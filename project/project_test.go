package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_DefaultsToFalse(t *testing.T) {
	var p Project
	assert.False(t, p.Flag())
}

func TestProject_LastWriteWins(t *testing.T) {
	p := &Project{}
	p.SetFlag(true)
	p.SetFlag(false)
	assert.False(t, p.Flag())
	p.SetFlag(true)
	assert.True(t, p.Flag())
}
