package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_CONNECTION_STRING", "postgres://localhost/app")
	t.Setenv("SUPABASE_JWT_SECRET", "secret")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("SUPABASE_S3_URL", "https://storage.local")
	t.Setenv("SUPABASE_S3_BUCKET", "images")
	t.Setenv("SUPABASE_S3_REGION", "us-east-1")
	t.Setenv("SUPABASE_S3_ACCESS_KEY", "access")
	t.Setenv("SUPABASE_S3_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "generation_completed", cfg.GenerationDoneTopic)
	assert.Empty(t, cfg.GCPProjectID)
}

func TestLoadRefusesMissingAPIKey(t *testing.T) {
	setRequiredEnv(t)
	// t.Setenv registered the restore; drop the variable entirely since a
	// set-but-empty value still satisfies the required check.
	os.Unsetenv("GEMINI_API_KEY")

	_, err := Load()
	require.Error(t, err, "startup must refuse to proceed without the API key")
}
