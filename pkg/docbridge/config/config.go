// Package config loads service configuration and builds the bridge's
// components from it. Values come from an optional YAML file with environment
// variables always taking precedence; the loaded struct is immutable and
// passed into constructors, never read through globals.
package config

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/docbridge/docbridge/pkg/docbridge"
	"github.com/docbridge/docbridge/pkg/docbridge/storage"
	s3storage "github.com/docbridge/docbridge/pkg/docbridge/storage/s3"
	"github.com/docbridge/docbridge/pkg/docbridge/token"
)

// Config is the full configuration surface of the service.
type Config struct {
	Server      ServerConfig     `yaml:"server"`
	JWT         JWTConfig        `yaml:"jwt"`
	Editor      EditorConfig     `yaml:"editor"`
	S3          S3Config         `yaml:"s3"`
	Download    DownloadConfig   `yaml:"download"`
	Permissions PermissionConfig `yaml:"permissions"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HOST" env-default:""`
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type JWTConfig struct {
	// Secret defaults to the known placeholder, which disables signing.
	Secret        string `yaml:"secret" env:"JWT_SECRET" env-default:"secret"`
	ExpirySeconds int    `yaml:"expiry_seconds" env:"JWT_EXPIRY_SECONDS" env-default:"3600"`
}

type EditorConfig struct {
	DocumentServerURL string `yaml:"document_server_url" env:"DOC_SERVER_URL" env-default:"http://localhost:8081"`
	CallbackBaseURL   string `yaml:"callback_base_url" env:"CALLBACK_BASE_URL" env-default:"http://localhost:8080/callback"`
	Lang              string `yaml:"lang" env:"EDITOR_LANG" env-default:"en"`
	Autosave          bool   `yaml:"autosave" env:"EDITOR_AUTOSAVE" env-default:"true"`
	Forcesave         bool   `yaml:"forcesave" env:"EDITOR_FORCESAVE" env-default:"true"`
}

type S3Config struct {
	Endpoint          string `yaml:"endpoint" env:"S3_ENDPOINT" env-default:""`
	Region            string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID       string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey   string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY" env-default:""`
	Bucket            string `yaml:"bucket" env:"S3_BUCKET" env-default:"documents"`
	UseSSL            bool   `yaml:"use_ssl" env:"S3_USE_SSL" env-default:"false"`
	UsePathStyle      bool   `yaml:"use_path_style" env:"S3_USE_PATH_STYLE" env-default:"true"`
	UsePresignedURLs  bool   `yaml:"use_presigned_urls" env:"S3_USE_PRESIGNED_URLS" env-default:"true"`
	PresignExpirySecs int    `yaml:"presign_expiry_seconds" env:"S3_PRESIGN_EXPIRY_SECONDS" env-default:"3600"`
}

type DownloadConfig struct {
	// Dir is the local fallback directory used when the store is disabled.
	Dir string `yaml:"dir" env:"DOWNLOAD_DIR" env-default:"./data/files"`
}

// PermissionConfig is the server-default permission layer. Empty string means
// "not configured": the hardcoded fallback applies.
type PermissionConfig struct {
	Edit     string `yaml:"edit" env:"DEFAULT_PERMISSIONS_EDIT" env-default:""`
	Download string `yaml:"download" env:"DEFAULT_PERMISSIONS_DOWNLOAD" env-default:""`
	Print    string `yaml:"print" env:"DEFAULT_PERMISSIONS_PRINT" env-default:""`
	Review   string `yaml:"review" env:"DEFAULT_PERMISSIONS_REVIEW" env-default:""`
	Comment  string `yaml:"comment" env:"DEFAULT_PERMISSIONS_COMMENT" env-default:""`
	Chat     string `yaml:"chat" env:"DEFAULT_PERMISSIONS_CHAT" env-default:""`
}

// Load reads configuration from path (optional) and the environment.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// StoreConfigured reports whether enough S3 settings are present to build a
// real gateway. Without them the service degrades to local-disk saves.
func (c *Config) StoreConfigured() bool {
	return c.S3.Endpoint != "" && c.S3.AccessKeyID != "" && c.S3.SecretAccessKey != ""
}

// BuildGateway constructs the object store gateway, or the disabled variant
// when the store is not configured.
func (c *Config) BuildGateway() (storage.Gateway, error) {
	if !c.StoreConfigured() {
		return storage.Disabled(), nil
	}
	return s3storage.New(s3storage.Config{
		Region:          c.S3.Region,
		Bucket:          c.S3.Bucket,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
		Endpoint:        c.S3.Endpoint,
		UseSSL:          c.S3.UseSSL,
		UsePathStyle:    c.S3.UsePathStyle,
		PresignExpiry:   c.S3.PresignExpirySecs,
	})
}

// EnsureBucket provisions the bucket when the gateway supports it. The error
// is surfaced to the caller so startup can report degraded readiness instead
// of silently continuing.
func EnsureBucket(ctx context.Context, gw storage.Gateway) error {
	type provisioner interface {
		EnsureBucket(ctx context.Context) error
	}
	if p, ok := gw.(provisioner); ok {
		return p.EnsureBucket(ctx)
	}
	return nil
}

// BuildIssuer constructs the token issuer.
func (c *Config) BuildIssuer() *token.Issuer {
	return token.New(c.JWT.Secret, time.Duration(c.JWT.ExpirySeconds)*time.Second)
}

// BuilderConfig assembles the editor config builder's settings.
func (c *Config) BuilderConfig() docbridge.BuilderConfig {
	return docbridge.BuilderConfig{
		DocumentServerURL:  c.Editor.DocumentServerURL,
		CallbackBaseURL:    c.Editor.CallbackBaseURL,
		UsePresignedURLs:   c.S3.UsePresignedURLs,
		PresignExpiry:      time.Duration(c.S3.PresignExpirySecs) * time.Second,
		DefaultLang:        c.Editor.Lang,
		DefaultPermissions: c.Permissions.Overrides(),
		Autosave:           c.Editor.Autosave,
		Forcesave:          c.Editor.Forcesave,
	}
}

// Overrides converts the string-form defaults into the three-state override
// struct the resolver expects.
func (p PermissionConfig) Overrides() *docbridge.PermissionOverrides {
	return &docbridge.PermissionOverrides{
		Edit:     parseOptionalBool(p.Edit),
		Download: parseOptionalBool(p.Download),
		Print:    parseOptionalBool(p.Print),
		Review:   parseOptionalBool(p.Review),
		Comment:  parseOptionalBool(p.Comment),
		Chat:     parseOptionalBool(p.Chat),
	}
}

func parseOptionalBool(s string) *bool {
	if s == "" {
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
