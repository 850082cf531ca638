package storage_audio

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/ogbidaniel/voice-cloning-paper/pkg/commons"
)

type s3Storage struct {
	logger commons.Logger
	client s3iface.S3API
	bucket string
}

// NewS3Storage uploads recordings to the given bucket. Credentials come from
// the default chain (environment, shared config, or an attached IAM role).
func NewS3Storage(logger commons.Logger, bucket, region string) (Storage, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("unable to create aws session: %w", err)
	}
	return &s3Storage{logger: logger, client: s3.New(sess), bucket: bucket}, nil
}

func (s *s3Storage) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("audio/wav"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload recording %s: %w", key, err)
	}
	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)
	s.logger.Debugf("recording uploaded: %s (%d bytes)", location, len(data))
	return location, nil
}
