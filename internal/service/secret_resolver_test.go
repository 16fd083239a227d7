package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKeyPassesPlainKeyThrough(t *testing.T) {
	got, err := ResolveAPIKey(context.Background(), "AIzaSy-plain-key")

	require.NoError(t, err)
	assert.Equal(t, "AIzaSy-plain-key", got)
}

func TestResolveAPIKeyPassesEmptyThrough(t *testing.T) {
	got, err := ResolveAPIKey(context.Background(), "")

	require.NoError(t, err)
	assert.Empty(t, got)
}
