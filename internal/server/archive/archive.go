// Package archive copies receipts of applied transactions to S3-compatible
// object storage. Objects are deterministic CBOR and keyed by the BLAKE3
// digest of their content.
package archive

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/lamportvault/internal/codec"
	"github.com/dmitrijs2005/lamportvault/internal/server/config"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/zeebo/blake3"
)

const contentType = "application/cbor"

// Archiver stores a receipt and returns the object key it was written under.
type Archiver interface {
	Put(ctx context.Context, r *models.Receipt) (string, error)
}

// Nop discards receipts. It is used when no bucket is configured.
type Nop struct{}

func (Nop) Put(context.Context, *models.Receipt) (string, error) { return "", nil }

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Archiver writes receipts to a bucket.
type S3Archiver struct {
	client putObjectAPI
	bucket string
}

// New returns an S3Archiver for cfg, or Nop when cfg.S3Bucket is empty.
func New(ctx context.Context, cfg *config.Config) (Archiver, error) {
	if cfg.S3Bucket == "" {
		return Nop{}, nil
	}
	return NewS3Archiver(ctx, cfg)
}

func NewS3Archiver(ctx context.Context, cfg *config.Config) (*S3Archiver, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
		o.UsePathStyle = true
	})
	return &S3Archiver{client: client, bucket: cfg.S3Bucket}, nil
}

// Key returns the object key for an encoded receipt.
func Key(r *models.Receipt, data []byte) string {
	sum := blake3.Sum256(data)
	at := r.CreatedAt.UTC()
	return fmt.Sprintf("receipts/%04d/%02d/%02d/%s.cbor", at.Year(), at.Month(), at.Day(), hex.EncodeToString(sum[:]))
}

func (a *S3Archiver) Put(ctx context.Context, r *models.Receipt) (string, error) {
	data, err := codec.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode receipt: %w", err)
	}
	key := Key(r, data)

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    map[string]string{"receipt-id": r.ID, "signer": r.Signer},
	})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", key, err)
	}
	return key, nil
}
