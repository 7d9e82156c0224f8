package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "Asia/Kolkata", cfg.App.Timezone)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.Equal(t, "http://localhost:8080/uploads", cfg.Storage.BaseURL)
	assert.Equal(t, "1h", cfg.JWT.AccessExpiration)
	assert.Equal(t, "secret", cfg.Storage.SigningKey)

	assert.True(t, cfg.Admin.Seed)
	assert.Empty(t, cfg.Admin.ID)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin@smarthr.com", cfg.Admin.Email)
	assert.Equal(t, "System Administrator", cfg.Admin.FullName)
}

func TestLoad_Overrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://hr.example.com, https://admin.example.com ,")
	t.Setenv("STORAGE_TYPE", "S3")
	t.Setenv("S3_BUCKET", "attachments")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORAGE_SIGNING_KEY", "link-key")
	t.Setenv("ADMIN_SEED", "false")
	t.Setenv("ADMIN_EMAIL", "HR@Example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://postgres:pw@localhost:6543/smarthr?sslmode=disable", cfg.DatabaseURL())
	assert.Equal(t, []string{"https://hr.example.com", "https://admin.example.com"}, cfg.App.AllowedOrigins)
	assert.Equal(t, StorageS3, cfg.Storage.Type)
	assert.Equal(t, "attachments", cfg.Storage.S3Bucket)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "link-key", cfg.Storage.SigningKey)
	assert.False(t, cfg.Admin.Seed)
	assert.Equal(t, "hr@example.com", cfg.Admin.Email)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database: DatabaseConfig{Driver: DriverPostgres, Password: "pw"},
			JWT:      JWTConfig{Secret: "secret"},
			App:      AppConfig{Timezone: "Asia/Kolkata"},
			Storage:  StorageConfig{Type: StorageLocal, BasePath: "./uploads", SigningKey: "link-key"},
			Admin:    AdminConfig{Seed: true, Username: "admin", Email: "admin@smarthr.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "memory needs no password", mutate: func(c *Config) { c.Database.Driver = DriverMemory; c.Database.Password = "" }},
		{name: "missing password", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: "DB_PASSWORD"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: "DB_DRIVER"},
		{name: "missing secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET_KEY"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Type = StorageS3 }, wantErr: "S3_BUCKET"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Type = "minio" }, wantErr: "STORAGE_TYPE"},
		{name: "local without signing key", mutate: func(c *Config) { c.Storage.SigningKey = "" }, wantErr: "STORAGE_SIGNING_KEY"},
		{name: "s3 needs no signing key", mutate: func(c *Config) { c.Storage = StorageConfig{Type: StorageS3, S3Bucket: "b"} }},
		{name: "seed without email", mutate: func(c *Config) { c.Admin.Email = "" }, wantErr: "ADMIN_EMAIL"},
		{name: "seed disabled", mutate: func(c *Config) { c.Admin = AdminConfig{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
