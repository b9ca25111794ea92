// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/shopyangu/backend/internal/apperrors"
	"github.com/shopyangu/backend/internal/config"
)

// StorageService forwards uploaded images to S3 and hands back a public URL.
// Without AWS credentials it falls back to local URLs for development.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

const (
	maxImageSize  = 5 * 1024 * 1024 // dashboard upload cap
	defaultFolder = "general"
)

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png"}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Local development mode without S3
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// UploadImage validates the file and forwards it to the provider in a single
// attempt. Provider failures are not retried.
func (s *StorageService) UploadImage(file multipart.File, header *multipart.FileHeader, folder string) (*UploadResult, error) {
	if header.Size > maxImageSize {
		return nil, apperrors.Newf(apperrors.InvalidInput,
			"file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxImageSize)
	}

	fileExt := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, ext := range allowedImageExtensions {
		if fileExt == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.Newf(apperrors.InvalidInput, "file type %s is not allowed", fileExt)
	}

	if err := s.validateImage(file); err != nil {
		return nil, err
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.UploadFailed, "failed to read file", err)
	}

	key := s.generateObjectKey(header.Filename, folder)
	contentType := header.Header.Get("Content-Type")

	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}

	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return nil, apperrors.Wrap(apperrors.UploadFailed, "failed to upload image", err)
	}

	return &UploadResult{
		URL:      s.getObjectURL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	url := fmt.Sprintf("http://%s:%s/uploads/%s", s.config.Server.Host, s.config.Server.Port, key)

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) DeleteFile(key string) error {
	if s.s3Client == nil {
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.Wrap(apperrors.UploadFailed, "failed to delete file", err)
	}

	return nil
}

func (s *StorageService) generateObjectKey(originalName, folder string) string {
	id := uuid.New()
	ext := filepath.Ext(originalName)
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, id.String()[:8], ext)

	if folder == "" {
		folder = defaultFolder
	}
	return fmt.Sprintf("%s/%s", folder, filename)
}

func (s *StorageService) getObjectURL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

func (s *StorageService) validateImage(file multipart.File) error {
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil && err != io.EOF {
		return apperrors.Wrap(apperrors.UploadFailed, "failed to read file", err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return apperrors.Wrap(apperrors.UploadFailed, "failed to rewind file", err)
	}

	if !isValidImageType(buffer) {
		return apperrors.New(apperrors.InvalidInput, "invalid image file")
	}

	return nil
}

func isValidImageType(buffer []byte) bool {
	// JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return true
	}

	// PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return true
	}

	return false
}
