// Package storage publica arquivos em um bucket S3 (ou compatível: MinIO, Supabase Storage).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/jhoicas/rastreio-doces-api/pkg/config"
)

// S3Storage implementa qrcode.ObjectStorage. Sem bucket configurado fica desativado.
type S3Storage struct {
	client s3iface.S3API
	cfg    config.StorageConfig
}

// NewS3Storage cria o cliente apenas quando há bucket.
func NewS3Storage(cfg config.StorageConfig) (*S3Storage, error) {
	if !cfg.Enabled() {
		return &S3Storage{cfg: cfg}, nil
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: criar sessão AWS: %w", err)
	}
	return &S3Storage{client: s3.New(sess), cfg: cfg}, nil
}

// Enabled indica se há cliente configurado.
func (s *S3Storage) Enabled() bool {
	return s.client != nil
}

// Put grava o objeto com leitura pública e devolve a URL.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("storage: bucket não configurado")
	}
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		ACL:           aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", fmt.Errorf("storage: upload %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL monta o endereço público do objeto.
func (s *S3Storage) URL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
