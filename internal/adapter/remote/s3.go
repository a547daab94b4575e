package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3manager "github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/semmidev/mediasafe/internal/config"
	"github.com/semmidev/mediasafe/internal/domain"
)

const lastSyncKey = ".last-sync"

type S3Storage struct {
	client   *s3.Client
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3 creates a new S3Storage instance using AWS SDK v2
func NewS3(cfg *appconfig.RemoteTarget) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	uploader := s3manager.NewUploader(client)

	return &S3Storage{
		client:   client,
		uploader: uploader,
		bucket:   cfg.Bucket,
		prefix:   strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// EnsureDirectory returns the key prefix acting as the directory id. Object
// storage has no real directories, so resolution is a pure normalization
// and trivially idempotent.
func (s *S3Storage) EnsureDirectory(ctx context.Context, dirPath string) (string, error) {
	return path.Join(s.prefix, strings.Trim(dirPath, "/")), nil
}

// StatByPath checks for an object at the given path via HeadObject.
func (s *S3Storage) StatByPath(ctx context.Context, remotePath string) error {
	key := path.Join(s.prefix, strings.Trim(remotePath, "/"))

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		var re *awshttp.ResponseError
		if errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to stat S3 object: %w", err)
	}
	return nil
}

// Upload transfers the item's file into the directory prefix.
func (s *S3Storage) Upload(ctx context.Context, dirID string, item domain.MediaItem) error {
	file, err := os.Open(item.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	key := path.Join(dirID, item.FileName)

	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   file,
	})
	if err != nil {
		var re *awshttp.ResponseError
		if errors.As(err, &re) && re.HTTPStatusCode() == http.StatusRequestEntityTooLarge {
			return fmt.Errorf("upload rejected: %w", domain.ErrQuotaExceeded)
		}
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	return nil
}

// MarkSyncCompleted writes a timestamp marker object under the prefix.
func (s *S3Storage) MarkSyncCompleted(ctx context.Context) error {
	key := path.Join(s.prefix, lastSyncKey)
	body := strings.NewReader(time.Now().UTC().Format(time.RFC3339))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to write sync marker: %w", err)
	}
	return nil
}
