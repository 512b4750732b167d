package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_MarkLoaded(t *testing.T) {
	src := &Source{Name: "environment", Type: SourceTypeEnv, Error: "stale"}
	now := time.Now()
	src.MarkLoaded(now)

	assert.True(t, src.Loaded)
	require.NotNil(t, src.LastLoaded)
	assert.True(t, src.LastLoaded.Equal(now))
	assert.Empty(t, src.Error)
}

func TestSource_MarkFailed(t *testing.T) {
	src := &Source{Name: "yaml", Type: SourceTypeYAML, Loaded: true}
	src.MarkFailed(errors.New("file not found"))

	assert.False(t, src.Loaded)
	assert.Equal(t, "file not found", src.Error)
	assert.Nil(t, src.LastLoaded)
}
