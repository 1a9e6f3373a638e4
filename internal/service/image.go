package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/kolo-pohody/backend/config"
)

// maxAvatarSize caps uploads at 5 MiB.
const maxAvatarSize = 5 << 20

var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ImageService stores user avatars in S3.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadAvatar stores the image under a fresh key and returns its public
// URL. Only common image content types are accepted.
func (s *ImageService) UploadAvatar(ctx context.Context, data []byte, contentType string) (string, error) {
	ext, ok := avatarExtensions[contentType]
	if !ok {
		return "", NewValidationError("unsupported avatar content type: %s", contentType)
	}
	if len(data) == 0 {
		return "", NewValidationError("avatar file is empty")
	}
	if len(data) > maxAvatarSize {
		return "", NewValidationError("avatar file exceeds the 5MB limit")
	}

	fileName := fmt.Sprintf("avatars/%s.%s", uuid.New(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] uploaded avatar %s", publicURL)
	return publicURL, nil
}
