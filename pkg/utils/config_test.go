package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", config.App.Port)
	assert.Equal(t, EnvDevelopment, config.App.Env)
	assert.False(t, config.App.IsProduction())
	assert.Equal(t, StorePostgres, config.Store.Driver)
	assert.Equal(t, 5*time.Minute, config.Cache.ListingTTL)
	assert.Equal(t, "TH", config.Booking.PhoneRegion)
	assert.Empty(t, config.Kafka.Brokers)
}

func TestLoadConfig_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "Production")
	t.Setenv("STORE", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("ADMIN_API_KEY", "s3cret")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.App.IsProduction())
	assert.Equal(t, StoreMemory, config.Store.Driver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "s3cret", config.Admin.APIKey)
}

func TestLoadConfig_UnknownStore(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("STORE", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5433", Name: "rentals", User: "app", Password: "pw"}
	assert.Equal(t, "user=app password=pw dbname=rentals host=db port=5433 sslmode=disable", c.DSN())
}
