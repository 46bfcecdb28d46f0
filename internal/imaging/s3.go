// Package imaging lists inspection images from the image-hosting bucket.
package imaging

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/circuitops/boardtrack/internal/production"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Lister reads the inspection image listing from an S3-compatible bucket.
type Lister struct {
	s3Client *s3.Client
	endpoint string
	bucket   string
	prefix   string
	logger   *zap.Logger
}

func NewLister(cfg map[string]string, logger *zap.Logger) (*Lister, error) {
	// Parse SSL setting
	useSSL := true
	if sslStr := cfg["use_ssl"]; sslStr != "" {
		if parsed, err := strconv.ParseBool(sslStr); err == nil {
			useSSL = parsed
		}
	}

	// Build endpoint URL
	endpoint := cfg["endpoint"]
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if useSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}

	region := cfg["region"]
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg["access_key_id"],
			cfg["secret_access_key"],
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing for MinIO compatibility
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Lister{
		s3Client: s3Client,
		endpoint: endpoint,
		bucket:   cfg["bucket"],
		prefix:   cfg["image_prefix"],
		logger:   logger,
	}, nil
}

func (l *Lister) Ping(ctx context.Context) error {
	_, err := l.s3Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(l.bucket),
		Prefix:  aws.String(l.prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to S3: %w", err)
	}
	return nil
}

// ListImages returns every inspection image under the configured prefix as
// (name, url) records in listing order.
func (l *Lister) ListImages(ctx context.Context) ([]production.ImageRecord, error) {
	prefix := l.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var records []production.ImageRecord
	paginator := s3.NewListObjectsV2Paginator(l.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !hasExtension(path.Ext(key), imageExtensions) {
				continue
			}

			records = append(records, production.ImageRecord{
				Name: key,
				URL:  l.objectURL(key),
			})
		}
	}

	l.logger.Info("Listed inspection images",
		zap.String("bucket", l.bucket),
		zap.String("prefix", prefix),
		zap.Int("images", len(records)))

	return records, nil
}

func (l *Lister) objectURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", l.endpoint, l.bucket, key)
}

func hasExtension(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}
