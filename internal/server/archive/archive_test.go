package archive

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/lamportvault/internal/codec"
	"github.com/dmitrijs2005/lamportvault/internal/server/config"
	"github.com/dmitrijs2005/lamportvault/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		ID:            "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		Signer:        "owner",
		Instruction:   "deposit",
		Amount:        1_000_000,
		Fee:           5000,
		Status:        models.ReceiptStatusOK,
		Vault:         "vault",
		VaultBalance:  1_000_000,
		SignerBalance: 42,
		CreatedAt:     time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
	}
}

func TestKey_IsContentAddressed(t *testing.T) {
	r := sampleReceipt()
	a, err := codec.Marshal(r)
	require.NoError(t, err)
	b, err := codec.Marshal(sampleReceipt())
	require.NoError(t, err)

	assert.Equal(t, Key(r, a), Key(r, b))
	assert.Regexp(t, regexp.MustCompile(`^receipts/2026/10/18/[0-9a-f]{64}\.cbor$`), Key(r, a))

	r2 := sampleReceipt()
	r2.Amount++
	c, err := codec.Marshal(r2)
	require.NoError(t, err)
	assert.NotEqual(t, Key(r, a), Key(r2, c))
}

func TestS3Archiver_Put(t *testing.T) {
	fake := &fakeS3{}
	a := &S3Archiver{client: fake, bucket: "receipts"}
	r := sampleReceipt()

	key, err := a.Put(context.Background(), r)
	require.NoError(t, err)

	require.NotNil(t, fake.in)
	assert.Equal(t, "receipts", aws.ToString(fake.in.Bucket))
	assert.Equal(t, key, aws.ToString(fake.in.Key))
	assert.Equal(t, contentType, aws.ToString(fake.in.ContentType))
	assert.Equal(t, r.ID, fake.in.Metadata["receipt-id"])

	var decoded models.Receipt
	require.NoError(t, codec.Unmarshal(fake.body, &decoded))
	assert.Equal(t, *r, decoded)
}

func TestS3Archiver_PutError(t *testing.T) {
	a := &S3Archiver{client: &fakeS3{err: errors.New("bucket gone")}, bucket: "b"}

	_, err := a.Put(context.Background(), sampleReceipt())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestNew_NopWithoutBucket(t *testing.T) {
	cfg := &config.Config{}
	arch, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.IsType(t, Nop{}, arch)

	key, err := arch.Put(context.Background(), sampleReceipt())
	require.NoError(t, err)
	assert.Empty(t, key)
}

func TestNewS3Archiver_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := NewS3Archiver(context.Background(), &config.Config{S3Bucket: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load aws config")
}

func TestNewS3Archiver_UsesClientFactory(t *testing.T) {
	origClient := newS3ClientFromConfig
	var opts s3.Options
	fake := &fakeS3{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(&opts)
		}
		return fake
	}
	defer func() { newS3ClientFromConfig = origClient }()

	a, err := NewS3Archiver(context.Background(), &config.Config{
		S3Bucket:       "b",
		S3Region:       "us-east-1",
		S3BaseEndpoint: "http://localhost:9000",
	})
	require.NoError(t, err)
	assert.Same(t, fake, a.client)
	assert.Equal(t, "http://localhost:9000", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}
