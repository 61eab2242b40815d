package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/moviegraph-clean/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/moviegraph-clean/internal/core/domain"
	"github.com/custodia-labs/moviegraph-clean/internal/core/ports/driving"
	"github.com/custodia-labs/moviegraph-clean/internal/core/services"
)

// mockCleaner records the last request.
type mockCleaner struct {
	req domain.CleanRequest
	err error
}

func (m *mockCleaner) Clean(_ context.Context, req domain.CleanRequest) (*domain.CleanResult, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CleanResult{
		RunID: "run-1",
		Files: []string{"a", "b", "c"},
		Rows:  map[domain.TableRole]int{domain.RolePeople: 2, domain.RoleMovies: 3, domain.RoleStars: 4},
	}, nil
}

// setupCleanTest installs a mock cleaner over the given config store and
// resets every flag to its default, since cobra keeps flag state between runs.
func setupCleanTest(t *testing.T, store *memory.ConfigStore) (*mockCleaner, *bytes.Buffer) {
	t.Helper()

	cleaner := &mockCleaner{}
	oldApp := app
	SetApp(&App{
		OpenSettings: func(string) (driving.SettingsService, error) {
			return services.NewSettingsService(store), nil
		},
		NewCleaner: func(driving.SettingsService) driving.Cleaner { return cleaner },
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	t.Cleanup(func() {
		app = oldApp
		rootCmd.SetArgs(nil)
		for _, name := range []string{"aggregate", "normalize", "output-format", "config"} {
			f := rootCmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	return cleaner, buf
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "moviegraph-clean <input> <output>", rootCmd.Use)
}

func TestRootCmd_Defaults(t *testing.T) {
	cleaner, buf := setupCleanTest(t, memory.NewConfigStore())
	rootCmd.SetArgs([]string{"in", "out"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, domain.CleanRequest{
		InputDir:  "in",
		OutputDir: "out",
		Options:   domain.DefaultPipelineOptions(),
	}, cleaner.req)
	assert.Contains(t, buf.String(), "actors       2 rows")
	assert.Contains(t, buf.String(), "Wrote 3 files to out")
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("pipeline.aggregate", true)
	_ = store.Set("pipeline.normalize", false)
	_ = store.Set("output.format", "parquet")
	cleaner, _ := setupCleanTest(t, store)
	rootCmd.SetArgs([]string{"in", "out", "--normalize", "--output-format", "CSV"})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, domain.PipelineOptions{
		Aggregate:    true,
		Normalize:    true,
		OutputFormat: domain.FormatCSV,
	}, cleaner.req.Options)
}

func TestRootCmd_ConfigOverridesDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("output.format", "parquet")
	cleaner, _ := setupCleanTest(t, store)
	rootCmd.SetArgs([]string{"in", "out", "--aggregate"})

	require.NoError(t, rootCmd.Execute())

	assert.True(t, cleaner.req.Options.Aggregate)
	assert.True(t, cleaner.req.Options.Normalize)
	assert.Equal(t, domain.FormatParquet, cleaner.req.Options.OutputFormat)
}

func TestRootCmd_BadOutputFormat(t *testing.T) {
	setupCleanTest(t, memory.NewConfigStore())
	rootCmd.SetArgs([]string{"in", "out", "--output-format", "xlsx"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRootCmd_RequiresTwoArgs(t *testing.T) {
	setupCleanTest(t, memory.NewConfigStore())
	rootCmd.SetArgs([]string{"in"})

	assert.Error(t, rootCmd.Execute())
}

func TestRootCmd_CleanError(t *testing.T) {
	cleaner, _ := setupCleanTest(t, memory.NewConfigStore())
	cleaner.err = domain.ErrSchemaMismatch
	rootCmd.SetArgs([]string{"in", "out"})

	assert.ErrorIs(t, rootCmd.Execute(), domain.ErrSchemaMismatch)
}

func TestRootCmd_ConfigError(t *testing.T) {
	setupCleanTest(t, memory.NewConfigStore())
	app.OpenSettings = func(path string) (driving.SettingsService, error) {
		assert.Equal(t, "missing.toml", path)
		return nil, domain.ErrNotFound
	}
	rootCmd.SetArgs([]string{"in", "out", "--config", "missing.toml"})

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "load config")
}

func TestRootCmd_NotConfigured(t *testing.T) {
	setupCleanTest(t, memory.NewConfigStore())
	app = nil
	rootCmd.SetArgs([]string{"in", "out"})

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "not configured")
}
