package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withoutConfigFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	withoutConfigFile(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxFileSize)
	assert.Equal(t, 10, cfg.Upload.MaxFiles)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, "/uploads", cfg.Storage.PublicURL)
	assert.Equal(t, 3, cfg.Order.MaxRetryAttempts)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	withoutConfigFile(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("UPLOAD_MAX_FILES", "3")
	t.Setenv("STORAGE_PUBLIC_URL", "https://cdn.example.com/")
	t.Setenv("ORDER_TX_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "shop", cfg.Database.Name)
	assert.Equal(t, 3, cfg.Upload.MaxFiles)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.PublicURL)
	assert.Equal(t, 2*time.Second, cfg.Order.TxTimeout)
}

func TestLoad_TrustedProxies(t *testing.T) {
	withoutConfigFile(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.7")

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Server.TrustedProxies, 2)
	assert.Equal(t, "10.0.0.0/8", cfg.Server.TrustedProxies[0].String())
	assert.Equal(t, "192.168.1.7/32", cfg.Server.TrustedProxies[1].String())

	t.Setenv("TRUSTED_PROXIES", "not-an-ip")
	_, err = Load()
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT: 7070\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidDuration(t *testing.T) {
	withoutConfigFile(t)
	t.Setenv("RATE_LIMIT_WINDOW", "soon")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RATE_LIMIT_WINDOW")
}

func TestLoad_StorageValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown backend",
			env:     map[string]string{"STORAGE_BACKEND": "ftp"},
			wantErr: "unknown STORAGE_BACKEND",
		},
		{
			name:    "s3 without bucket",
			env:     map[string]string{"STORAGE_BACKEND": "s3"},
			wantErr: "S3_BUCKET",
		},
		{
			name:    "cloudinary without url",
			env:     map[string]string{"STORAGE_BACKEND": "cloudinary"},
			wantErr: "CLOUDINARY_URL",
		},
		{
			name:    "auth without password hash",
			env:     map[string]string{"AUTH_JWT_SECRET": "s3cr3t"},
			wantErr: "AUTH_ADMIN_PASSWORD_HASH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withoutConfigFile(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
