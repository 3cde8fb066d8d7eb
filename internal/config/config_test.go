package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	defaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func serveValues() map[string]any {
	return map[string]any{
		"AUTH_MODE":           AuthFirebase,
		"FIREBASE_PROJECT_ID": "revamp-dev",
		"RAZORPAY_KEY_ID":     "rzp_test_1",
		"RAZORPAY_KEY_SECRET": "secret",
	}
}

func TestFromViper_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, "noreply@revamp.in", cfg.Mail.From.Address)
	assert.Equal(t, "REvamp", cfg.Mail.From.Name)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.CORSOrigins)
}

func TestFromViper_Values(t *testing.T) {
	t.Parallel()

	cfg, err := fromViper(newViper(map[string]any{
		"ENV":               "Production",
		"CORS_ORIGINS":      "https://revamp.in, https://admin.revamp.in,,",
		"REMINDER_INTERVAL": "90s",
		"STORAGE_BACKEND":   "GCS",
		"ADMIN_EMAIL":       " admin@revamp.in ",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"https://revamp.in", "https://admin.revamp.in"}, cfg.CORSOrigins)
	assert.Equal(t, 90*time.Second, cfg.ReminderInterval)
	assert.Equal(t, StorageGCS, cfg.Storage.Backend)
	assert.Equal(t, "admin@revamp.in", cfg.AdminEmail)
}

func TestFromViper_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]map[string]any{
		"database url":      {"DATABASE_URL": "localhost"},
		"reminder interval": {"REMINDER_INTERVAL": "soon"},
		"negative interval": {"REMINDER_INTERVAL": "-1m"},
		"mail from":         {"MAIL_FROM": "not an address"},
		"locale":            {"DEFAULT_LOCALE": "!!"},
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := fromViper(newViper(values))
			assert.Error(t, err)
		})
	}
}

func TestValidateServe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		change  map[string]any
		wantErr bool
	}{
		{"firebase ok", nil, false},
		{"firebase without project", map[string]any{"FIREBASE_PROJECT_ID": ""}, true},
		{"jwt ok", map[string]any{"AUTH_MODE": AuthJWT, "AUTH_JWT_SECRET": "0123456789abcdef"}, false},
		{"jwt short secret", map[string]any{"AUTH_MODE": AuthJWT, "AUTH_JWT_SECRET": "short"}, true},
		{"jwt in production", map[string]any{"ENV": "production", "AUTH_MODE": AuthJWT, "AUTH_JWT_SECRET": "0123456789abcdef"}, true},
		{"unknown auth", map[string]any{"AUTH_MODE": "magic"}, true},
		{"gcs without bucket", map[string]any{"STORAGE_BACKEND": StorageGCS}, true},
		{"gcs ok", map[string]any{"STORAGE_BACKEND": StorageGCS, "STORAGE_BUCKET": "revamp"}, false},
		{"unknown storage", map[string]any{"STORAGE_BACKEND": "s3"}, true},
		{"bad public url", map[string]any{"STORAGE_PUBLIC_URL": "files"}, true},
		{"missing razorpay", map[string]any{"RAZORPAY_KEY_SECRET": ""}, true},
		{"discord without channel", map[string]any{"DISCORD_TOKEN": "tok"}, true},
		{"discord bad channel", map[string]any{"DISCORD_TOKEN": "tok", "DISCORD_CHANNEL_ID": "general"}, true},
		{"discord ok", map[string]any{"DISCORD_TOKEN": "tok", "DISCORD_CHANNEL_ID": "123456789"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := serveValues()
			for k, v := range tt.change {
				values[k] = v
			}
			cfg, err := fromViper(newViper(values))
			require.NoError(t, err)
			if tt.wantErr {
				assert.Error(t, cfg.ValidateServe())
			} else {
				assert.NoError(t, cfg.ValidateServe())
			}
		})
	}
}
