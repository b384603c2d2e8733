package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJWTSecret(t *testing.T) {
	dev := Env{JWTSecret: DefaultJWTSecret}
	assert.NoError(t, dev.Validate())

	release := Env{JWTSecret: DefaultJWTSecret, GinMode: "release"}
	assert.Error(t, release.Validate())

	release.JWTSecret = "a-real-secret"
	assert.NoError(t, release.Validate())
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("FARE_MODE", "Distance")
	t.Setenv("BOOKING_BURST", "9")

	env := LoadEnv("")
	assert.Equal(t, DefaultJWTSecret, env.JWTSecret)
	assert.Equal(t, "distance", env.FareMode)
	assert.Equal(t, 9, env.BookingBurst)
}

func TestDSN(t *testing.T) {
	dsn := DSN(Env{DBUser: "tp_user", DBPassword: "pw", DBHost: "127.0.0.1:3306", DBName: "transport_db"})
	require.True(t, strings.HasPrefix(dsn, "tp_user:pw@tcp(127.0.0.1:3306)/transport_db?"))
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}
