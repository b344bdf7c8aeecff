package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, 15*time.Minute, cfg.AccessTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, 3, cfg.LoginRateLimit)
	require.Equal(t, time.Minute, cfg.LoginRateWindow)
	require.Equal(t, "any", cfg.TaskStatusPolicy)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "30s")
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "12h")
	t.Setenv("TASK_STATUS_POLICY", "forward")
	t.Setenv("BCRYPT_COST", "4")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, 30*time.Second, cfg.AccessTTL)
	require.Equal(t, 12*time.Hour, cfg.RefreshTTL)
	require.Equal(t, "forward", cfg.TaskStatusPolicy)
	require.Equal(t, 4, cfg.BcryptCost)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad ttl":        {"JWT_REFRESH_EXPIRES_IN": "7 days"},
		"bad driver":     {"DB_DRIVER": "oracle"},
		"same secrets":   {"JWT_ACCESS_SECRET": "same", "JWT_REFRESH_SECRET": "same"},
		"bad policy":     {"TASK_STATUS_POLICY": "strict"},
		"bad cost":       {"BCRYPT_COST": "ten"},
		"bad rate limit": {"LOGIN_RATE_LIMIT": "0"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}
