package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/docbridge/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "secret", cfg.JWT.Secret)
	assert.Equal(t, 3600, cfg.JWT.ExpirySeconds)
	assert.Equal(t, "./data/files", cfg.Download.Dir)
	assert.False(t, cfg.StoreConfigured())

	// Placeholder secret disables the issuer out of the box.
	assert.False(t, cfg.BuildIssuer().Enabled())

	gw, err := cfg.BuildGateway()
	require.NoError(t, err)
	assert.False(t, gw.Enabled())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "a-long-enough-signing-secret")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "minioadmin")
	t.Setenv("S3_SECRET_ACCESS_KEY", "minioadmin")
	t.Setenv("S3_BUCKET", "docs")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.StoreConfigured())
	assert.True(t, cfg.BuildIssuer().Enabled())

	gw, err := cfg.BuildGateway()
	require.NoError(t, err)
	assert.True(t, gw.Enabled())
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"7000\"\neditor:\n  lang: de\n"), 0644))

	t.Setenv("PORT", "7100")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7100", cfg.Addr())         // env beats file
	assert.Equal(t, "de", cfg.Editor.Lang)       // file beats default
}

func TestPermissionConfig_Overrides(t *testing.T) {
	p := config.PermissionConfig{
		Edit:     "false",
		Download: "true",
		Review:   "",
		Comment:  "not-a-bool",
	}

	o := p.Overrides()
	require.NotNil(t, o.Edit)
	assert.False(t, *o.Edit)
	require.NotNil(t, o.Download)
	assert.True(t, *o.Download)
	assert.Nil(t, o.Review)
	assert.Nil(t, o.Comment) // unparseable behaves as unset
	assert.Nil(t, o.Chat)
}

func TestBuilderConfig(t *testing.T) {
	t.Setenv("DEFAULT_PERMISSIONS_CHAT", "false")
	t.Setenv("S3_USE_PRESIGNED_URLS", "false")

	cfg, err := config.Load("")
	require.NoError(t, err)

	bc := cfg.BuilderConfig()
	assert.False(t, bc.UsePresignedURLs)
	assert.Equal(t, "en", bc.DefaultLang)
	require.NotNil(t, bc.DefaultPermissions.Chat)
	assert.False(t, *bc.DefaultPermissions.Chat)
}
