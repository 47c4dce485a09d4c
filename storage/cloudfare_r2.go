package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrR2NotConfigured = errors.New("cloudflare R2 is not configured")

type CloudflareR2UploaderConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether any R2 setting was provided.
func (c CloudflareR2UploaderConfig) Enabled() bool {
	return c.AccountID != "" || c.AccessKeyID != "" || c.SecretAccessKey != "" || c.BucketName != ""
}

func (c CloudflareR2UploaderConfig) validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"account id", c.AccountID},
		{"access key", c.AccessKeyID},
		{"secret", c.SecretAccessKey},
		{"bucket", c.BucketName},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrR2NotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

func (c CloudflareR2UploaderConfig) endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

type r2Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewCloudflareR2Store talks to R2 through its S3-compatible API.
func NewCloudflareR2Store(ctx context.Context, cfg CloudflareR2UploaderConfig) (ObjectStore, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.endpoint())
	})
	return &r2Store{client: client, bucket: cfg.BucketName, baseURL: cfg.PublicBaseURL}, nil
}

func (s *r2Store) Put(ctx context.Context, key string, body []byte, opts PutOptions) (*UploadResult, error) {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
	}
	if opts.ContentType != "" {
		in.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		in.CacheControl = aws.String(opts.CacheControl)
	}

	out, err := s.client.PutObject(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("r2 put %s: %w", key, err)
	}
	return &UploadResult{
		Key:      key,
		Location: s.PublicURL(key),
		ETag:     strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}

func (s *r2Store) Remove(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("r2 delete %s: %w", key, err)
	}
	return nil
}

func (s *r2Store) PublicURL(key string) string {
	return joinPublicURL(s.baseURL, key)
}

// joinPublicURL resolves key against base. Returns "" when either is missing or unparsable.
func joinPublicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}
	ref, err := url.Parse(strings.TrimPrefix(key, "/"))
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(ref).String()
}
