package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Location identifies a single object in a bucket
type S3Location struct {
	Bucket string
	Key    string
}

// ParseS3URL splits an s3://bucket/key URL into its parts
func ParseS3URL(raw string) (S3Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return S3Location{}, fmt.Errorf("invalid s3 url %q: %w", raw, err)
	}
	if u.Scheme != "s3" {
		return S3Location{}, fmt.Errorf("invalid s3 url %q: scheme must be s3", raw)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return S3Location{}, fmt.Errorf("invalid s3 url %q: bucket and key are required", raw)
	}
	return S3Location{Bucket: u.Host, Key: key}, nil
}

// NewS3Client initializes an S3 client from the shared AWS configuration chain.
// A non-empty Endpoint switches to path-style addressing for S3-compatible stores.
func NewS3Client(ctx context.Context, cfg AWSConfig) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
