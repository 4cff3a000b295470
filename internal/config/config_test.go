package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"Assets", "Bank", "Liabilities"}, cfg.Accounts)
	assert.Equal(t, ":", cfg.Separator)
	assert.Equal(t, "US$", cfg.Symbols.Foreign)
	assert.Equal(t, "$", cfg.Symbols.Local)
	assert.Equal(t, "€", cfg.Symbols.Commodities["EUR"])
	assert.Equal(t, "Expense Report", cfg.Title)
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Accounts = []string{"Assets:Chequing", "Liabilities:Visa"}
	cfg.Title = "Vacation"

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	content := "accounts:\n  - Liabilities\nsymbols:\n  foreign: \"€\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Liabilities"}, cfg.Accounts)
	assert.Equal(t, "€", cfg.Symbols.Foreign)
	assert.Equal(t, "$", cfg.Symbols.Local)
	assert.Equal(t, ":", cfg.Separator)
	assert.Equal(t, "Expense Report", cfg.Title)
}

func TestLoad_EmptySeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("separator: \"\"\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "separator")
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("accounts: [unclosed\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadOrDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("title: From cwd\n"), 0o644))
	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "From cwd", cfg.Title)

	_, err = LoadOrDefault("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReportOptions(t *testing.T) {
	cfg := Default()
	cfg.Separator = "/"

	opts := cfg.ReportOptions()
	assert.Equal(t, cfg.Accounts, opts.Accounts)
	assert.Equal(t, "/", opts.Separator)
	assert.Equal(t, "US$", opts.Symbols.Foreign)
	assert.Equal(t, "US$", opts.Symbols.Commodities["USD"])
	assert.Equal(t, "Expense Report", opts.Title)
}
