package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"micelio/config"
	"micelio/infras/otel"
	"micelio/shared/constant"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog/log"
)

const (
	otelAttrObjectKey = "object_key"
	otelAttrBucket    = "bucket"
	defaultRegion     = "auto"
)

// ErrNotFound is returned when the object does not exist.
var ErrNotFound = errors.New("object not found")

// S3 reads and writes whole objects of a single bucket.
type S3 interface {
	PutObject(ctx context.Context, key, contentType string, body []byte) (etag string, err error)
	GetObject(ctx context.Context, key string) (body []byte, etag string, err error)
	HeadObject(ctx context.Context, key string) (etag string, err error)
}

type s3Impl struct {
	Client *s3.Client
	Bucket string
	otel   otel.Otel
}

func (svc *s3Impl) PutObject(ctx context.Context, key, contentType string, body []byte) (etag string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".PutObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.Bucket,
	})

	out, err := svc.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to upload object to S3: %w", err)
	}

	return normalizeETag(out.ETag), nil
}

func (svc *s3Impl) GetObject(ctx context.Context, key string) (body []byte, etag string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".GetObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		otelAttrObjectKey: key,
		otelAttrBucket:    svc.Bucket,
	})

	out, err := svc.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(svc.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, constant.Empty, ErrNotFound
		}

		return nil, constant.Empty, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer out.Body.Close()

	body, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, constant.Empty, fmt.Errorf("failed to read object body: %w", err)
	}

	return body, normalizeETag(out.ETag), nil
}

func (svc *s3Impl) HeadObject(ctx context.Context, key string) (etag string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".HeadObject")
	defer scope.End()
	defer scope.TraceIfError(err)

	out, err := svc.Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(svc.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return constant.Empty, ErrNotFound
		}

		return constant.Empty, fmt.Errorf("failed to head object in S3: %w", err)
	}

	return normalizeETag(out.ETag), nil
}

// isNotFound covers the typed S3 errors and the bare 404 code that
// S3-compatible stores return for HEAD requests.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}

func normalizeETag(etag *string) string {
	return strings.Trim(aws.ToString(etag), `"`)
}

func New(config *config.Config, otel otel.Otel) S3 {
	endpoint := config.External.S3.APIEndpoint

	staticProvider := credentials.NewStaticCredentialsProvider(
		config.External.S3.AccessKeyID,
		config.External.S3.SecretAccessKey,
		"",
	)

	cfg, err := awsConfig.LoadDefaultConfig(
		context.TODO(),
		awsConfig.WithCredentialsProvider(staticProvider),
	)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	region := config.External.S3.Region
	if region == "" {
		region = defaultRegion
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
		o.Region = region
	})

	return &s3Impl{
		Client: s3Client,
		Bucket: config.External.S3.BucketName,
		otel:   otel,
	}
}
