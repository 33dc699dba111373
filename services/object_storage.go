package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sc "filevault/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type UploadURLOutput struct {
	StorageKey string `json:"storage_key"`
	UploadURL  string `json:"upload_url"`
}

// ObjectStorageService is the s3 storage mode: bytes go straight to the
// bucket through presigned URLs and the file row only keeps the key.
type ObjectStorageService interface {
	PresignUpload(ctx context.Context) (UploadURLOutput, error)
	PresignDownload(ctx context.Context, storageKey string) (string, error)
}

type objectStorageService struct {
	cfg *sc.S3Config
}

func NewObjectStorageService(cfg *sc.S3Config) ObjectStorageService {
	return &objectStorageService{cfg: cfg}
}

func storageKeyFor(now time.Time) string {
	return fmt.Sprintf("files/%d/%02d/%v", now.Year(), now.Month(), uuid.New())
}

func (s *objectStorageService) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return s3.NewPresignClient(client), nil
}

func (s *objectStorageService) PresignUpload(ctx context.Context) (UploadURLOutput, error) {
	presignClient, err := s.presignClient(ctx)
	if err != nil {
		return UploadURLOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "初始化对象存储失败", err)
	}

	bucket := s.cfg.Bucket
	key := storageKeyFor(time.Now())

	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(time.Duration(s.cfg.PresignExpireMinute)*time.Minute))
	if err != nil {
		return UploadURLOutput{}, newAppError(http.StatusInternalServerError, KindInternal, "生成上传链接失败", err)
	}

	return UploadURLOutput{StorageKey: key, UploadURL: req.URL}, nil
}

func (s *objectStorageService) PresignDownload(ctx context.Context, storageKey string) (string, error) {
	presignClient, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.cfg.Bucket
	req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &storageKey,
	}, s3.WithPresignExpires(time.Duration(s.cfg.PresignExpireMinute)*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
