package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"LISTEN_ADDR", "FEATURE_CONFIG", "SESSION_SECRET", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	"SMTP_HOST", "SMTP_PORT", "MAIL_USERNAME", "MAIL_PASSWORD", "MAIL_PASSWORD_FILE",
	"MAIL_FROM", "TEST_EMAIL_ONLY", "GOOGLE_CREDENTIALS_JSON", "GOOGLE_CREDENTIALS_FILE",
}

// clearEnv saves the original values for cleanup and removes them so
// godotenv can populate them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
}

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "s3cr3t")
	t.Setenv("ADMIN_USERNAME", "NHC_TarunBoss2025")
	t.Setenv("ADMIN_PASSWORD", "T@runHeals#051!Dbgn")
}

func TestLoad(t *testing.T) {
	t.Run("valid config with defaults", func(t *testing.T) {
		clearEnv(t)
		setValidEnv(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "s3cr3t", cfg.SessionSecret)
		assert.Equal(t, "NHC_TarunBoss2025", cfg.AdminUsername)
		assert.Equal(t, "T@runHeals#051!Dbgn", cfg.AdminPassword)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
		assert.Equal(t, "587", cfg.SMTPPort)
		assert.Equal(t, ":5000", cfg.ListenAddr)
		assert.Equal(t, "./data/booking.toml", cfg.FeatureConfigPath)
		assert.False(t, cfg.MailConfigured())
		assert.Nil(t, cfg.GoogleCredentials)
	})

	t.Run("mail from defaults to username", func(t *testing.T) {
		clearEnv(t)
		setValidEnv(t)
		t.Setenv("MAIL_USERNAME", "clinic@example.com")
		t.Setenv("MAIL_PASSWORD", "app-password")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "clinic@example.com", cfg.MailFrom)
		assert.True(t, cfg.MailConfigured())
	})

	t.Run("credentials blob from env", func(t *testing.T) {
		clearEnv(t)
		setValidEnv(t)
		t.Setenv("GOOGLE_CREDENTIALS_JSON", `{"type":"service_account"}`)

		cfg, err := Load()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"service_account"}`, string(cfg.GoogleCredentials))
	})

	missingVarTests := []struct {
		name    string
		unset   string
		wantErr string
	}{
		{"missing SESSION_SECRET", "SESSION_SECRET", "SESSION_SECRET is required"},
		{"missing ADMIN_USERNAME", "ADMIN_USERNAME", "ADMIN_USERNAME is required"},
		{"missing ADMIN_PASSWORD", "ADMIN_PASSWORD", "ADMIN_PASSWORD is required"},
	}

	for _, tt := range missingVarTests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setValidEnv(t)
			t.Setenv(tt.unset, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_SecretFiles(t *testing.T) {
	dir := t.TempDir()
	pwFile := filepath.Join(dir, "mail_password")
	credFile := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(pwFile, []byte("from-file\n"), 0o600))
	require.NoError(t, os.WriteFile(credFile, []byte(`{"client_email":"svc@example.iam.gserviceaccount.com"}`), 0o600))

	clearEnv(t)
	setValidEnv(t)
	t.Setenv("MAIL_PASSWORD", "ignored")
	t.Setenv("MAIL_PASSWORD_FILE", pwFile)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", credFile)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.MailPassword)
	assert.Contains(t, string(cfg.GoogleCredentials), "svc@example.iam.gserviceaccount.com")
}

func TestLoad_MissingSecretFile(t *testing.T) {
	clearEnv(t)
	setValidEnv(t)
	t.Setenv("MAIL_PASSWORD_FILE", "/nonexistent/mail_password")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAIL_PASSWORD_FILE")
}

func TestLoad_MissingCredentialsFile(t *testing.T) {
	clearEnv(t)
	setValidEnv(t)
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "/nonexistent/credentials.json")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CREDENTIALS_FILE")
}

func TestLoadWithFile_RealEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "SESSION_SECRET=fromfile\nADMIN_USERNAME=admin\nADMIN_PASSWORD=pw\nSMTP_PORT=465\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	clearEnv(t)

	cfg, err := LoadWithFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.SessionSecret)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "465", cfg.SMTPPort)
}

func TestLoadWithFile_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SESSION_SECRET=fromfile\nADMIN_USERNAME=admin\nADMIN_PASSWORD=pw\n"), 0o644))

	clearEnv(t)
	t.Setenv("SESSION_SECRET", "fromenv")

	cfg, err := LoadWithFile(envFile)
	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.SessionSecret)
}

func TestLoadWithFile_NonExistentFile(t *testing.T) {
	clearEnv(t)
	setValidEnv(t)

	cfg, err := LoadWithFile("/nonexistent/.env")
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", cfg.SessionSecret)
}

func TestLoadWithFile_GodotenvError(t *testing.T) {
	// A directory path causes godotenv to return a non-IsNotExist error
	dir := t.TempDir()
	_, err := LoadWithFile(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading .env file")
}

func TestValidate_AllFieldsSet(t *testing.T) {
	cfg := &Config{SessionSecret: "s", AdminUsername: "u", AdminPassword: "p"}
	assert.NoError(t, cfg.Validate())
}

func TestMailConfigured(t *testing.T) {
	tests := []struct {
		name     string
		user, pw string
		want     bool
	}{
		{"both set", "u", "p", true},
		{"missing password", "u", "", false},
		{"missing username", "", "p", false},
		{"neither", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{MailUsername: tt.user, MailPassword: tt.pw}
			assert.Equal(t, tt.want, cfg.MailConfigured())
		})
	}
}

func TestDefaultShop_IndependentCopies(t *testing.T) {
	a := DefaultShop()
	b := DefaultShop()

	a.Slots[0] = "mutated"
	a.Treatments = append(a.Treatments, "extra")

	assert.Equal(t, "10:00 AM - 11:00 AM", b.Slots[0])
	assert.Len(t, b.Treatments, 6)
	assert.Equal(t, "+91", b.CountryCode)
	assert.Len(t, b.Slots, 5)
}
