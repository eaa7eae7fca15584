package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jonesrussell/scout/internal/logger"
)

// S3Config configures the optional report mirror.
type S3Config struct {
	Enabled      bool        `yaml:"enabled"        env:"REPORTS_S3_ENABLED"`
	Bucket       string      `yaml:"bucket"         env:"REPORTS_S3_BUCKET"`
	Prefix       string      `yaml:"prefix"         env:"REPORTS_S3_PREFIX"`
	Region       string      `yaml:"region"         env:"AWS_REGION"`
	Endpoint     string      `yaml:"endpoint"       env:"REPORTS_S3_ENDPOINT"`
	UsePathStyle bool        `yaml:"use_path_style" env:"REPORTS_S3_PATH_STYLE"`
	Retry        RetryConfig `yaml:"retry"`
}

// Uploader is the subset of the S3 client the mirror needs.
type Uploader interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds an S3 client from the default AWS credential chain.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// S3Mirror writes through an inner Store and uploads each artifact to S3.
type S3Mirror struct {
	inner    Store
	uploader Uploader
	cfg      S3Config
	log      logger.Logger
}

// NewS3Mirror wraps inner.
func NewS3Mirror(inner Store, uploader Uploader, cfg S3Config, log logger.Logger) *S3Mirror {
	return &S3Mirror{inner: inner, uploader: uploader, cfg: cfg, log: log}
}

// Write implements Writer. Local artifact paths are returned even when an
// upload fails; the upload error is returned alongside them.
func (m *S3Mirror) Write(ctx context.Context, r Report) (map[string]string, error) {
	paths, err := m.inner.Write(ctx, r)
	if err != nil {
		return paths, err
	}
	return m.mirror(ctx, r.Slug, paths)
}

// WriteAdvisory implements AdvisoryWriter with the same upload semantics as Write.
func (m *S3Mirror) WriteAdvisory(ctx context.Context, a Advisory) (map[string]string, error) {
	paths, err := m.inner.WriteAdvisory(ctx, a)
	if err != nil {
		return paths, err
	}
	return m.mirror(ctx, a.Slug, paths)
}

func (m *S3Mirror) mirror(ctx context.Context, slug string, paths map[string]string) (map[string]string, error) {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]string, len(paths)*2)
	for k, v := range paths {
		out[k] = v
	}

	var errs []error
	for _, name := range names {
		local := paths[name]
		key := m.objectKey(slug, filepath.Base(local))

		if upErr := m.upload(ctx, local, key); upErr != nil {
			m.log.Error("Report upload failed",
				logger.String("file", local),
				logger.String("bucket", m.cfg.Bucket),
				logger.String("key", key),
				logger.Error(upErr),
			)
			errs = append(errs, fmt.Errorf("upload %s: %w", name, upErr))
			continue
		}

		out["s3_"+name] = "s3://" + m.cfg.Bucket + "/" + key
	}

	return out, errors.Join(errs...)
}

func (m *S3Mirror) upload(ctx context.Context, local, key string) error {
	data, err := os.ReadFile(local)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}

	return retry(ctx, m.cfg.Retry, func(ctx context.Context) error {
		_, putErr := m.uploader.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(m.cfg.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType(local)),
		})
		return putErr
	})
}

func (m *S3Mirror) objectKey(slug, file string) string {
	prefix := strings.Trim(m.cfg.Prefix, "/")
	if prefix == "" {
		return path.Join(slug, file)
	}
	return path.Join(prefix, slug, file)
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
