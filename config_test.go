package warehouse_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/warehouse"
)

func TestDefaultViper(t *testing.T) {
	t.Parallel()

	vip := warehouse.DefaultViper()
	assert.NotEmpty(t, vip)

	// This test enforces the default values, so whenever they change,
	// make sure to also update the documentation of the CLI!

	assert.Equal(t, "warehouse", vip.GetString("application_name"))
	assert.Empty(t, vip.Get("instance_name"))

	assert.Equal(t, warehouse.LocalEnv, warehouse.Environment(vip.GetString("environment")))

	assert.Equal(t, "info", vip.GetString("log.level"))
	assert.Equal(t, "text", vip.GetString("log.format"))

	assert.False(t, vip.GetBool("store.enabled"))
	assert.Equal(t, ".warehouse", vip.GetString("store.dir"))

	assert.True(t, vip.GetBool("seed"))
}

func TestDefaultViper_Unmarshal(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		conf := warehouse.Config{}

		err := warehouse.DefaultViper().Unmarshal(&conf)
		require.NoError(t, err)

		assert.Equal(t, warehouse.Config{
			ApplicationName: "warehouse",
			Environment:     warehouse.LocalEnv,
			Log:             warehouse.Log{Level: slog.LevelInfo, Format: warehouse.TextFormat},
			Store:           warehouse.Store{Enabled: false, Dir: ".warehouse"},
			Seed:            true,
		}, conf)
	})

	t.Run("config file", func(t *testing.T) {
		t.Parallel()

		vip := warehouse.DefaultViper()
		vip.SetConfigFile("./testdata/config/test-config.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		conf := warehouse.Config{}

		err = vip.Unmarshal(&conf)
		require.NoError(t, err)

		assert.Equal(t, "warehouse-test", conf.ApplicationName)
		assert.Equal(t, "instance-0", conf.InstanceName)
		assert.Equal(t, warehouse.TestEnv, conf.Environment)
		assert.Equal(t, slog.LevelDebug, conf.Log.Level)
		assert.Equal(t, warehouse.JSONFormat, conf.Log.Format)
		assert.True(t, conf.Store.Enabled)
		assert.Equal(t, "/tmp/warehouse", conf.Store.Dir)
		assert.False(t, conf.Seed)
	})

	t.Run("invalid environment", func(t *testing.T) {
		t.Parallel()

		vip := warehouse.DefaultViper()
		vip.SetConfigFile("./testdata/config/invalid-config.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		conf := warehouse.Config{}

		err = vip.Unmarshal(&conf)
		assert.Error(t, err, "should fail when using unsupported enum values")
		assert.Contains(t, err.Error(), "use one of: local, test, dev, prod", "error message should list out all accepted environments")
	})

	t.Run("invalid log format", func(t *testing.T) {
		t.Parallel()

		vip := warehouse.DefaultViper()
		vip.SetConfigFile("./testdata/config/invalid-log-format.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		err = vip.Unmarshal(&warehouse.Config{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "use one of: text, json")
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		vip := warehouse.DefaultViper()
		vip.SetConfigFile("./testdata/config/invalid-log-level.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		err = vip.Unmarshal(&warehouse.Config{})
		assert.Error(t, err)
	})

	t.Run("custom config", func(t *testing.T) {
		t.Parallel()

		type MyConfig struct {
			SomeStructField  struct{ A string }
			warehouse.Config `mapstructure:",squash"`
		}

		vip := warehouse.DefaultViper()
		vip.SetConfigFile("./testdata/config/test-config.yaml")
		err := vip.ReadInConfig()
		require.NoError(t, err)

		conf := MyConfig{}

		err = vip.Unmarshal(&conf)
		assert.NoError(t, err)
		assert.Equal(t, warehouse.TestEnv, conf.Environment)
		assert.Equal(t, slog.LevelDebug, conf.Log.Level)
	})
}

func TestLoad(t *testing.T) { //nolint:paralleltest // t.Setenv does not allow parallel tests
	t.Run("without file", func(t *testing.T) {
		conf, err := warehouse.Load("")
		require.NoError(t, err)
		assert.Equal(t, warehouse.LocalEnv, conf.Environment)
	})

	t.Run("missing file", func(t *testing.T) {
		conf, err := warehouse.Load("./testdata/config/not-existing.yaml")
		assert.Error(t, err)
		assert.Nil(t, conf)
	})

	t.Run("environment overwrites file", func(t *testing.T) {
		t.Setenv("WAREHOUSE_LOG_LEVEL", "warn")
		t.Setenv("WAREHOUSE_STORE_DIR", "/var/lib/warehouse")

		conf, err := warehouse.Load("./testdata/config/test-config.yaml")
		require.NoError(t, err)

		assert.Equal(t, slog.LevelWarn, conf.Log.Level)
		assert.Equal(t, "/var/lib/warehouse", conf.Store.Dir)
		assert.Equal(t, warehouse.TestEnv, conf.Environment)
	})
}
