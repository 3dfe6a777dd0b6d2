package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.env"))

	config, err := LoadConfig(ServiceUser)
	require.NoError(t, err)

	assert.Equal(t, ServiceUser, config.App.Name)
	assert.Equal(t, "8081", config.App.Port)
	assert.Equal(t, 15*time.Minute, config.JWT.AccessTTL)
	assert.Equal(t, 7*24*time.Hour, config.JWT.RefreshTTL)
	assert.Equal(t, []string{"*"}, config.CORS.AllowedOrigins)
	assert.True(t, config.Cookie.Secure)
	assert.Empty(t, config.Redis.Addr)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9000\nJWT_SECRET=0123456789abcdef0123456789abcdef\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_ACCESS_TTL", "30m")

	config, err := LoadConfig(ServiceGateway)
	require.NoError(t, err)

	assert.Equal(t, "9000", config.App.Port)
	assert.Equal(t, 30*time.Minute, config.JWT.AccessTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.CORS.AllowedOrigins)
	assert.NoError(t, config.ValidateGateway())
}

func TestValidateJWTRejectsShortSecret(t *testing.T) {
	config := &Config{JWT: JWTConfig{Secret: "short", AccessTTL: time.Minute, RefreshTTL: time.Hour}}
	assert.Error(t, config.ValidateJWT())
	assert.Error(t, config.ValidateUserService())
}
