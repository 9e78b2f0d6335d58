// utils/photos.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var photoClient *s3.Client
var photoBucket string
var cdnBaseURL string

// InitPhotoStorage configures the S3-compatible client for profile photos.
// When PHOTO_BUCKET_NAME is unset the service falls back to local uploads,
// so a missing config is not an error.
func InitPhotoStorage() error {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKeyID := os.Getenv("S3_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("S3_ACCESS_KEY_SECRET")
	photoBucket = os.Getenv("PHOTO_BUCKET_NAME")
	cdnBaseURL = os.Getenv("CDN_BASE_URL")

	if photoBucket == "" {
		return nil
	}
	if cdnBaseURL == "" {
		cdnBaseURL = endpoint
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load photo storage config: %w", err)
	}

	photoClient = s3.NewFromConfig(cfg)
	return nil
}

// StoreProfilePhoto uploads the photo to the bucket and returns its public
// URL. Without a configured bucket the file lands under uploads/photos/ and
// the returned URL is the local static path.
func StoreProfilePhoto(fileHeader *multipart.FileHeader, userID int64) (string, error) {
	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("photos/%d/%s%s", userID, uuid.NewString(), ext)

	if photoClient == nil {
		localPath := GetUploadPath(key)
		if err := SaveFile(fileHeader, localPath); err != nil {
			return "", fmt.Errorf("failed to save photo locally: %w", err)
		}
		return "/" + localPath, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	_, err = photoClient.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(photoBucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
