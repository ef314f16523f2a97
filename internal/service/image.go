package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantryline/backend/config"
)

// ImageService stores recipe images in S3
type ImageService struct {
	s3Config *config.S3Config
	log      *zap.Logger
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config, log *zap.Logger) *ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageService{s3Config: s3Config, log: log}
}

// UploadRecipeImage uploads image data to S3 and returns the public URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, data []byte, contentType string) (string, error) {
	ext := extensionFor(contentType)
	fileName := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	s.log.Info("uploaded recipe image", zap.String("url", publicURL))
	return publicURL, nil
}

// SignedRecipeImageURL exchanges a stored image URL for a time-limited
// presigned link to the underlying object.
func (s *ImageService) SignedRecipeImageURL(ctx context.Context, imageURL string) (string, error) {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.s3Config.BucketName)
	key := strings.TrimPrefix(imageURL, prefix)
	if key == imageURL || key == "" {
		return "", fmt.Errorf("image url %q does not belong to bucket %s", imageURL, s.s3Config.BucketName)
	}
	return s.s3Config.GeneratePresignedURL(ctx, key, 15*time.Minute)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
