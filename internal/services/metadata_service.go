// internal/services/metadata_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/models"
)

// MetadataService stores edition metadata and artwork. Sellers upload here
// first and pass the resulting URL as the edition's token URI. Uploads go to
// S3 when credentials are configured, to local disk otherwise.
type MetadataService struct {
	s3Client *s3.S3
	db       *gorm.DB
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewMetadataService(db *gorm.DB, cfg *config.Config) (*MetadataService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local-disk fallback for development.
		return &MetadataService{db: db, config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &MetadataService{
		s3Client: s3.New(sess),
		db:       db,
		config:   cfg,
	}, nil
}

// Upload stores a metadata file and records the asset against its uploader.
func (s *MetadataService) Upload(uploaderID uuid.UUID, file multipart.File, header *multipart.FileHeader, tags []string) (*UploadResult, error) {
	const maxSize = 10 << 20
	if header.Size > maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, int64(maxSize))
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".json", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".mp4":
	default:
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	key := fmt.Sprintf("metadata/%s%s", uuid.New().String(), ext)
	contentType := header.Header.Get("Content-Type")

	var result *UploadResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(fileBytes, key, contentType)
	} else {
		result, err = s.uploadToLocal(fileBytes, key, contentType)
	}
	if err != nil {
		return nil, err
	}

	asset := &models.MetadataAsset{
		UploaderID: uploaderID,
		Key:        result.Key,
		URL:        result.URL,
		MimeType:   result.MimeType,
		Size:       result.Size,
		Tags:       tags,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, fmt.Errorf("failed to record metadata asset: %w", err)
	}

	return result, nil
}

func (s *MetadataService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key)
	if s.config.AWS.CloudFrontURL != "" {
		url = fmt.Sprintf("%s/%s", strings.TrimRight(s.config.AWS.CloudFrontURL, "/"), key)
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *MetadataService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join("./uploads", key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      "/uploads/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}
