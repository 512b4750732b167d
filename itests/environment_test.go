package itests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_ServerURLIsSet(t *testing.T) {
	require.NotNil(t, environment)
	assert.NotEmpty(t, environment.ServerURL())
}

func TestEnvironment_ServerNameIsSet(t *testing.T) {
	require.NotNil(t, environment)
	assert.NotEmpty(t, environment.ServerName())
	t.Logf("Server Name: %s", environment.ServerName())
}

func TestEnvironment_RepeatedReadsAreStable(t *testing.T) {
	require.NotNil(t, environment)

	url, name := environment.ServerURL(), environment.ServerName()
	for i := 0; i < 3; i++ {
		assert.Equal(t, url, environment.ServerURL())
		assert.Equal(t, name, environment.ServerName())
	}
}
