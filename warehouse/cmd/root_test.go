package cmd_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedcmd "github.com/go-arrower/warehouse/cmd"
	"github.com/go-arrower/warehouse/repository"
	"github.com/go-arrower/warehouse/warehouse/cmd"
)

func TestWarehouseCLI(t *testing.T) {
	t.Parallel()

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI())
		assert.NoError(t, err)
		assert.Contains(t, output, "Available Commands:")
		assert.Contains(t, output, "demo")
		assert.Contains(t, output, "increase")
	})

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "version")
		assert.NoError(t, err)
		assert.Contains(t, output, "warehouse version: ")
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		_, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "list", "--config", "../../testdata/config/invalid-config.yaml")
		assert.Error(t, err)
	})

	t.Run("invalid log level", func(t *testing.T) {
		t.Parallel()

		_, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "list", "--log-level", "verbose")
		assert.Error(t, err)
	})
}

func TestDemoCmd(t *testing.T) {
	t.Parallel()

	output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "demo")
	require.NoError(t, err)

	expected := []string{
		"Groceries:",
		"[Grocery]   #1 Rice (5kg) Qty=40, Expires=",
		"[Grocery]   #2 Milk Qty=15, Expires=",
		"Electronics:",
		"[Electronic] #1 Laptop (Dell) Qty=10, Warranty=24m",
		"[Electronic] #2 Phone (Samsung) Qty=25, Warranty=12m",
		"Duplicate add: item with id 1 already exists",
		"RemoveItem error: item with id 999 not found",
		"Invalid quantity: invalid quantity: -5 is negative",
		"Stock updated for #2: 15 -> 25",
	}

	pos := 0
	for _, line := range expected {
		i := strings.Index(output[pos:], line)
		if !assert.NotEqual(t, -1, i, "missing or out of order: %s", line) {
			return
		}

		pos += i + len(line)
	}
}

func TestListCmd(t *testing.T) {
	t.Parallel()

	t.Run("all categories", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "list")
		assert.NoError(t, err)
		assert.Contains(t, output, "Groceries:")
		assert.Contains(t, output, "Electronics:")
		assert.Contains(t, output, "[Electronic] #2 Phone (Samsung) Qty=25, Warranty=12m")
	})

	t.Run("one category", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "list", "Electronics")
		assert.NoError(t, err)
		assert.Contains(t, output, "[Electronic] #1 Laptop")
		assert.NotContains(t, output, "[Grocery]")
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "list", "furniture")
		assert.Error(t, err)
		assert.Contains(t, output, "use one of: electronics, groceries")
	})
}

func TestIncreaseCmd(t *testing.T) {
	t.Parallel()

	t.Run("increase", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "electronics", "2", "10")
		assert.NoError(t, err)
		assert.Contains(t, output, "Stock updated for #2: 25 -> 35")
	})

	t.Run("decrease", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "2", "-5")
		assert.NoError(t, err)
		assert.Contains(t, output, "Stock updated for #2: 15 -> 10")
	})

	t.Run("failed operation is not an error of the command", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "1", "2147483647")
		assert.NoError(t, err)
		assert.Contains(t, output, "IncreaseStock error: quantity overflow")

		output, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "999", "1")
		assert.NoError(t, err)
		assert.Contains(t, output, "IncreaseStock error: item with id 999 not found")
	})

	t.Run("malformed arguments", func(t *testing.T) {
		t.Parallel()

		_, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "two", "1")
		assert.Error(t, err)

		_, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "2", "3000000000")
		assert.Error(t, err, "delta does not fit into a quantity")

		_, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "groceries", "2")
		assert.Error(t, err)
	})
}

func TestRemoveCmd(t *testing.T) {
	t.Parallel()

	output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "remove", "groceries", "1")
	assert.NoError(t, err)
	assert.Contains(t, output, "Removed item #1")

	output, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "remove", "groceries", "999")
	assert.NoError(t, err)
	assert.Contains(t, output, "RemoveItem error: item with id 999 not found")

	_, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "remove", "groceries", "1.5")
	assert.Error(t, err)
}

func TestStoreDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--store-dir", dir, "increase", "groceries", "2", "10")
	require.NoError(t, err)
	assert.Contains(t, output, "Stock updated for #2: 15 -> 25")

	output, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--store-dir", dir, "list", "groceries")
	require.NoError(t, err)
	assert.Contains(t, output, "[Grocery]   #2 Milk Qty=25")

	output, err = sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--store-dir", dir, "seed")
	assert.Error(t, err, "the stored items already exist")
	assert.Contains(t, output, "already exists")
}

func TestStoreDir_corruptData(t *testing.T) {
	t.Parallel()

	for name, content := range map[string]string{
		"not json":   "not json",
		"empty item": "[null]",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			err := os.WriteFile(filepath.Join(dir, "electronics.json"), []byte(content), 0o600)
			require.NoError(t, err)

			output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--store-dir", dir, "list")
			assert.ErrorIs(t, err, repository.ErrLoad)
			assert.NotContains(t, output, "[Electronic]")
		})
	}
}

func TestSeedCmd(t *testing.T) {
	t.Parallel()

	output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "seed")
	assert.NoError(t, err)
	assert.Contains(t, output, "Seeded sample items")
	assert.Contains(t, output, `msg="seeded sample data"`, "info is logged by default")
}

func TestFlags(t *testing.T) {
	t.Parallel()

	t.Run("metrics", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--metrics", "increase", "electronics", "1", "1")
		assert.NoError(t, err)
		assert.Contains(t, output, "# TYPE usecases_total counter")
		assert.Contains(t, output, `command="inventory.increaseStockCommand"`)
	})

	t.Run("no metrics by default", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "increase", "electronics", "1", "1")
		assert.NoError(t, err)
		assert.NotContains(t, output, "usecases_total")
	})

	t.Run("log level", func(t *testing.T) {
		t.Parallel()

		output, err := sharedcmd.TestExecute(t, cmd.NewWarehouseCLI(), "--log-level", "debug", "remove", "groceries", "999")
		assert.NoError(t, err)
		assert.Contains(t, output, `msg="failed to execute command"`)
		assert.Contains(t, output, "traceID=")
		assert.Contains(t, output, "run=")
	})
}
