package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Import.MaxFileMB)
	assert.Equal(t, 20*1024*1024, cfg.Import.MaxFileBytes())
	assert.False(t, cfg.Ledger.AllowDelete, "borrar entradas del libro está apagado por defecto")
	assert.Equal(t, 200, cfg.Ledger.PageSize)
	assert.Equal(t, "BRL", cfg.Report.Currency)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("LEDGER_ALLOW_DELETE", "true")
	t.Setenv("LEDGER_PAGE_SIZE", "50")
	t.Setenv("REPORT_CURRENCY", "USD")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Ledger.AllowDelete)
	assert.Equal(t, 50, cfg.Ledger.PageSize)
	assert.Equal(t, "USD", cfg.Report.Currency)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_LimiteDeArchivoInvalido(t *testing.T) {
	t.Setenv("IMPORT_MAX_FILE_MB", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "inv", Password: "p@ss:w/rd", DBName: "inventario", SSLMode: "disable"}
	assert.Equal(t, "postgres://inv:p%40ss%3Aw%2Frd@db:5432/inventario?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
