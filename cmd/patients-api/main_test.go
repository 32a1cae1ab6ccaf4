package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/aanand-mishra/patients-api/internal/config"
	"github.com/aanand-mishra/patients-api/internal/storage/jsonfile"
	"github.com/aanand-mishra/patients-api/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStorage(t *testing.T) {
	dir := t.TempDir()

	s, err := openStorage(config.Storage{Driver: config.DriverJSON, Path: filepath.Join(dir, "p.json"), CreateIfMissing: true})
	require.NoError(t, err)
	assert.IsType(t, &jsonfile.Store{}, s)
	_, err = s.Load(context.Background())
	assert.NoError(t, err)

	s, err = openStorage(config.Storage{Driver: config.DriverSQLite, Path: filepath.Join(dir, "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &sqlite.SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = openStorage(config.Storage{Driver: config.DriverJSON, Path: filepath.Join(dir, "absent.json")})
	assert.Error(t, err)

	_, err = openStorage(config.Storage{Driver: "csv"})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()
	assert.False(t, setupLogger(config.EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvStaging).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvDev).Enabled(ctx, slog.LevelDebug))
}
