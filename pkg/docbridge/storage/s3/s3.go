// Package s3 implements the storage.Gateway contract against any
// S3-compatible service (AWS S3, MinIO).
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

// Config options for the S3 gateway
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // access key ID
	SecretAccessKey string // secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UseSSL          bool   // Use SSL for connections (default: true)
	UsePathStyle    bool   // Use path-style addressing (MinIO requires this)
	PresignExpiry   int    // Default expiry in seconds for presigned URLs (default: 3600)
}

// Gateway is an S3-compatible implementation of storage.Gateway
type Gateway struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
	config        Config
}

// New creates a new S3 gateway. It does not touch the bucket; call
// EnsureBucket once at startup to provision it.
func New(cfg Config) (*Gateway, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, storage.ErrStoreUnavailable
	}

	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PresignExpiry == 0 {
		cfg.PresignExpiry = 3600
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Gateway{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Second,
		config:        cfg,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist. Idempotent; meant to
// run once at startup so a provisioning failure shows up in readiness instead
// of on the first save.
func (g *Gateway) EnsureBucket(ctx context.Context) error {
	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(g.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "NoSuchBucket") &&
		!strings.Contains(err.Error(), "NotFound") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(g.bucket),
	}
	if g.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(g.config.Region),
		}
	}

	_, err = g.client.CreateBucket(ctx, createInput)
	if err != nil {
		if strings.Contains(err.Error(), "BucketAlreadyExists") ||
			strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Put uploads the object and returns its direct URL.
func (g *Gateway) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	uploader := manager.NewUploader(g.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return "", &storage.StorageError{Op: "put", Key: key, Err: err}
	}

	return g.DirectURL(key), nil
}

// Exists reports whether the key is present in the bucket.
func (g *Gateway) Exists(ctx context.Context, key string) (bool, error) {
	_, err := g.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) || strings.Contains(err.Error(), "NotFound") {
			return false, nil
		}
		return false, &storage.StorageError{Op: "exists", Key: key, Err: err}
	}
	return true, nil
}

// PresignedURL returns a signed GET URL for key valid for the given expiry.
// The key must exist; signing a URL for an absent object would hand the editor
// a link that 404s only after the session opened.
func (g *Gateway) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	exists, err := g.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &storage.StorageError{Op: "presign", Key: key, Err: storage.ErrObjectNotFound}
	}

	if expiry <= 0 {
		expiry = g.presignExpiry
	}

	result, err := g.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = expiry
	})
	if err != nil {
		return "", &storage.StorageError{Op: "presign", Key: key, Err: err}
	}

	return result.URL, nil
}

// DirectURL constructs the unsigned object URL. With a custom endpoint the
// path-style form is used (MinIO); otherwise the virtual-hosted AWS form.
func (g *Gateway) DirectURL(key string) string {
	if g.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s",
			strings.TrimRight(g.config.Endpoint, "/"), g.bucket, escapeKey(key))
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.bucket, g.config.Region, escapeKey(key))
}

// Delete removes the object. Absent keys fail with ErrObjectNotFound so
// callers can distinguish "already gone" from "removed".
func (g *Gateway) Delete(ctx context.Context, key string) error {
	exists, err := g.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return &storage.StorageError{Op: "delete", Key: key, Err: storage.ErrObjectNotFound}
	}

	if _, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return &storage.StorageError{Op: "delete", Key: key, Err: err}
	}

	return nil
}

// Enabled always reports true for a constructed S3 gateway.
func (g *Gateway) Enabled() bool { return true }

// escapeKey escapes each path segment while preserving the key's slashes.
func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
