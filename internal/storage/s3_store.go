package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API: часть клиента S3, которой пользуется хранилище.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Options struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint включает path-style адресацию для MinIO и подобных.
	Endpoint string
}

type S3Store struct {
	client         S3API
	bucket         string
	prefix         string
	maxUploadBytes int64
}

// NewS3Client собирает клиент из статических ключей или, если их нет, из стандартной цепочки AWS.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось загрузить конфигурацию AWS: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Store(client S3API, bucket, prefix string, maxUploadBytes int64) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix, maxUploadBytes: maxUploadBytes}
}

// Store читает файл в память с ограничением размера и загружает одним PutObject.
func (s *S3Store) Store(ctx context.Context, r io.Reader, suggestedName string) (string, error) {
	contentType, body, err := sniff(r)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	written, err := io.Copy(&buf, &io.LimitedReader{R: body, N: s.maxUploadBytes + 1})
	if err != nil {
		return "", fmt.Errorf("storage: ошибка чтения файла: %w", err)
	}
	if written > s.maxUploadBytes {
		return "", ErrTooLarge
	}

	key := s.prefix + objectKey(suggestedName, time.Now())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(written),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: s3 put %s: %w", key, err)
	}
	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	if !validRef(ref) {
		return fmt.Errorf("storage: недопустимая ссылка %q", ref)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("storage: s3 delete %s: %w", ref, err)
	}
	return nil
}
