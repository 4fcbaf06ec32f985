package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry/internal/eventbus"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigService(filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	svc := NewConfigService(path)

	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://shop.test:8080"
	cfg.API.Timeout = Duration{3 * time.Second}
	cfg.Search.PageSize = 5
	cfg.Search.DefaultVegan = true
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\npage_size = 7\n\n[api]\ntimeout = \"250ms\"\n"), 0o644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Search.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.API.Timeout.Duration)
	assert.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	assert.True(t, cfg.UISettings.ShowIngredients)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api]\ntimeout = \"soon\"\n"), 0o644))

	_, err := NewConfigService(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadPublishesEvent(t *testing.T) {
	bus := eventbus.New(nil)
	defer bus.Close()

	got := make(chan eventbus.ConfigLoadedEvent, 1)
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		got <- e.(eventbus.ConfigLoadedEvent)
	})

	svc := NewConfigServiceWithBus(filepath.Join(t.TempDir(), "config.toml"), bus)
	_, err := svc.Load()
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, 20, ev.PageSize)
	case <-time.After(time.Second):
		t.Fatal("ConfigLoaded was not published")
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := DefaultConfig()
	ApplyEnv(cfg, []string{
		"PANTRY_API_URL=http://api.test",
		"PANTRY_PAGE_SIZE=50",
		"PANTRY_VERBOSE=true",
		"PANTRY_API_TIMEOUT=2s",
		"PANTRY_LOG_FILE=",
		"garbage",
	})

	assert.Equal(t, "http://api.test", cfg.API.BaseURL)
	assert.Equal(t, 50, cfg.Search.PageSize)
	assert.True(t, cfg.Logging.Verbose)
	assert.Equal(t, 2*time.Second, cfg.API.Timeout.Duration)
	assert.Equal(t, "pantry.log", cfg.Logging.File)
}

func TestApplyEnvIgnoresUnparseable(t *testing.T) {
	cfg := DefaultConfig()
	ApplyEnv(cfg, []string{"PANTRY_PAGE_SIZE=many", "PANTRY_VERBOSE=maybe", "PANTRY_API_TIMEOUT=later"})

	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.False(t, cfg.Logging.Verbose)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout.Duration)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty url", mutate: func(c *Config) { c.API.BaseURL = "  " }, wantErr: "base_url"},
		{name: "zero page size", mutate: func(c *Config) { c.Search.PageSize = 0 }, wantErr: "page_size"},
		{name: "negative timeout", mutate: func(c *Config) { c.API.Timeout = Duration{-time.Second} }, wantErr: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
