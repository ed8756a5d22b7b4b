package reql

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalOptionsOmitsReadModeWhenUnset(t *testing.T) {
	b, err := json.Marshal(GlobalOptions{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestGlobalOptionsIncludesReadModeWhenSet(t *testing.T) {
	b, err := json.Marshal(GlobalOptions{ReadMode: ReadModeMajority})
	require.NoError(t, err)
	assert.JSONEq(t, `{"read_mode":"majority"}`, string(b))
}
