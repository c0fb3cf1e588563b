package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the part of the S3 client the fetcher needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Fetcher reads text objects from S3 or an S3-compatible store.
type S3Fetcher struct {
	client   S3API
	maxBytes int64
}

// NewS3Fetcher returns a fetcher that refuses objects larger than maxBytes.
func NewS3Fetcher(client S3API, maxBytes int64) *S3Fetcher {
	return &S3Fetcher{client: client, maxBytes: maxBytes}
}

// Fetch downloads ref and returns its body as text.
func (f *S3Fetcher) Fetch(ctx context.Context, ref Ref) (string, error) {
	if ref.Scheme != SchemeS3 {
		return "", fmt.Errorf("%w: %s is not an s3 reference", ErrUnsupported, ref)
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ref.Bucket),
		Key:    aws.String(ref.Path),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		var noBucket *s3types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		return "", fmt.Errorf("failed to get object %s: %w", ref, err)
	}
	defer out.Body.Close()

	if out.ContentLength != nil && f.maxBytes > 0 && *out.ContentLength > f.maxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, ref, *out.ContentLength)
	}
	return readText(out.Body, f.maxBytes, ref.String())
}

// NewS3Client builds a client from the default AWS chain. Static credentials from
// S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY take precedence, for stores such as R2 or
// MinIO. A custom endpoint switches to path-style addressing.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if key, secret := os.Getenv("S3_ACCESS_KEY_ID"), os.Getenv("S3_SECRET_ACCESS_KEY"); key != "" && secret != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(key, secret, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
