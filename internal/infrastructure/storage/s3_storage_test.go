package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rastreio-doces-api/pkg/config"
)

type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestNewS3Storage_SemBucketDesativado(t *testing.T) {
	s, err := NewS3Storage(config.StorageConfig{})
	require.NoError(t, err)
	assert.False(t, s.Enabled())
	_, err = s.Put(context.Background(), "k", "image/png", nil)
	assert.Error(t, err)
}

func TestPut_EnviaObjetoPublico(t *testing.T) {
	fake := &fakeS3{}
	s := &S3Storage{client: fake, cfg: config.StorageConfig{Bucket: "etiquetas", Region: "sa-east-1"}}

	url, err := s.Put(context.Background(), "qrcodes/LOT001.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://etiquetas.s3.sa-east-1.amazonaws.com/qrcodes/LOT001.png", url)
	assert.Equal(t, "etiquetas", aws.StringValue(fake.input.Bucket))
	assert.Equal(t, "public-read", aws.StringValue(fake.input.ACL))
	assert.Equal(t, []byte("png"), fake.body)
}

func TestURL_BaseCustomizada(t *testing.T) {
	s := &S3Storage{cfg: config.StorageConfig{Bucket: "b", PublicBaseURL: "https://cdn.doces.com/"}}
	assert.Equal(t, "https://cdn.doces.com/qrcodes/X.png", s.URL("qrcodes/X.png"))

	s = &S3Storage{cfg: config.StorageConfig{Bucket: "b", Endpoint: "http://minio:9000"}}
	assert.Equal(t, "http://minio:9000/b/qrcodes/X.png", s.URL("qrcodes/X.png"))
}
