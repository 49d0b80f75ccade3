package catalog

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/vango-dev/quicktip/internal/errors"
)

// DefaultPollInterval is how often an S3Source checks for a new version.
const DefaultPollInterval = time.Minute

// S3API is the subset of the S3 client a catalog needs.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source loads a catalog from an S3 object. Watch polls the object and
// only reloads when its ETag changes.
type S3Source struct {
	client S3API
	bucket string
	key    string

	PollInterval time.Duration
	Logger       *slog.Logger

	mu   sync.Mutex
	etag string
}

var _ Source = (*S3Source)(nil)

// NewS3Source creates a source for rawURL, which must look like
// s3://bucket/path/to/tips.yaml.
func NewS3Source(client S3API, rawURL string) (*S3Source, error) {
	bucket, key, err := ParseS3URL(rawURL)
	if err != nil {
		return nil, err
	}
	return &S3Source{
		client:       client,
		bucket:       bucket,
		key:          key,
		PollInterval: DefaultPollInterval,
		Logger:       slog.Default(),
	}, nil
}

// ParseS3URL splits an s3:// URL into bucket and key.
func ParseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "s3" || u.Host == "" || strings.Trim(u.Path, "/") == "" {
		return "", "", errors.New(errors.CatalogFetchFailed).
			WithDetailf("%q is not an s3://bucket/key URL.", rawURL)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

func (s *S3Source) String() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Load implements Source.
func (s *S3Source) Load(ctx context.Context) (*Catalog, error) {
	c, _, err := s.fetch(ctx, "")
	return c, err
}

// fetch downloads the object unless its ETag equals ifNoneMatch, in which
// case it returns (nil, false, nil). The ETag is sent as If-None-Match so
// an unchanged object is never transferred.
func (s *S3Source) fetch(ctx context.Context, ifNoneMatch string) (*Catalog, bool, error) {
	format, err := DetectFormat(s.key)
	if err != nil {
		return nil, false, err
	}

	in := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	}
	if ifNoneMatch != "" {
		in.IfNoneMatch = aws.String(ifNoneMatch)
	}
	out, err := s.client.GetObject(ctx, in)
	if err != nil {
		if ifNoneMatch != "" && notModified(err) {
			return nil, false, nil
		}
		return nil, false, errors.New(errors.CatalogFetchFailed).
			WithDetail("Could not get " + s.String()).
			Wrap(err)
	}
	defer out.Body.Close()

	etag := aws.ToString(out.ETag)
	if ifNoneMatch != "" && etag == ifNoneMatch {
		return nil, false, nil
	}

	data, err := readAll(out.Body)
	if err != nil {
		return nil, false, errors.New(errors.CatalogFetchFailed).Wrap(err)
	}
	c, err := Parse(data, format, s.String())
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.etag = etag
	s.mu.Unlock()
	return c, true, nil
}

// notModified reports whether err is S3's answer to a matching
// If-None-Match.
func notModified(err error) bool {
	var status interface{ HTTPStatusCode() int }
	if stderrors.As(err, &status) && status.HTTPStatusCode() == http.StatusNotModified {
		return true
	}
	var apiErr smithy.APIError
	return stderrors.As(err, &apiErr) && apiErr.ErrorCode() == "NotModified"
}

// Watch implements Source.
func (s *S3Source) Watch(ctx context.Context, fn func(*Catalog, error)) error {
	interval := s.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		s.mu.Lock()
		last := s.etag
		s.mu.Unlock()

		c, changed, err := s.fetch(ctx, last)
		switch {
		case err != nil:
			logger.Warn("catalog poll failed", "source", s.String(), "error", err)
			fn(nil, err)
		case changed:
			logger.Info("catalog reloaded", "source", s.String(), "tips", len(c.Entries))
			fn(c, nil)
		}
	}
}

// NewS3Client creates an S3 client for region using credentials from the
// standard AWS_* environment variables. An empty region falls back to
// AWS_REGION.
func NewS3Client(region string) *s3.Client {
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
	})
}

func envCredentials(context.Context) (aws.Credentials, error) {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}
