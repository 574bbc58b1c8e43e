// Package storage keeps uploaded product and scrap photos, in S3 when a bucket is
// configured and on local disk otherwise.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"gold-pos/internal/config"
)

var (
	ErrTooLarge       = errors.New("file is too large")
	ErrTypeNotAllowed = errors.New("file type is not allowed")
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
}

type Service struct {
	s3Client s3iface.S3API
	bucket   string
	region   string
	dir      string
	baseURL  string
	maxSize  int64
	now      func() time.Time
}

// New picks S3 when credentials and a bucket are configured, local disk otherwise.
func New(cfg *config.Config) (*Service, error) {
	s := &Service{
		dir:     cfg.Uploads.Dir,
		baseURL: strings.TrimRight(cfg.Uploads.BaseURL, "/"),
		maxSize: cfg.Uploads.MaxSize,
		bucket:  cfg.AWS.S3Bucket,
		region:  cfg.AWS.Region,
		now:     time.Now,
	}

	if cfg.AWS.AccessKeyID == "" || cfg.AWS.S3Bucket == "" {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir: %w", err)
		}
		return s, nil
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
	s.s3Client = s3.New(sess)
	return s, nil
}

func (s *Service) UsesS3() bool { return s.s3Client != nil }

// LocalDir is the directory served under /uploads when S3 is off.
func (s *Service) LocalDir() string { return s.dir }

// Upload stores one image under folder and returns its public URL.
func (s *Service) Upload(ctx context.Context, folder, filename, contentType string, r io.Reader) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotAllowed, ext)
	}

	if s.maxSize > 0 {
		r = io.LimitReader(r, s.maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, s.maxSize)
	}

	key := s.key(folder, ext)
	if s.s3Client != nil {
		return s.uploadToS3(ctx, data, key, contentType)
	}
	return s.uploadToLocal(data, key, contentType)
}

func (s *Service) key(folder, ext string) string {
	name := fmt.Sprintf("%s_%s%s", s.now().UTC().Format("20060102"), uuid.NewString(), ext)
	if folder == "" {
		return name
	}
	return folder + "/" + name
}

func (s *Service) uploadToS3(ctx context.Context, data []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}

func (s *Service) uploadToLocal(data []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &UploadResult{
		URL:      s.baseURL + "/uploads/" + key,
		Key:      key,
		Size:     int64(len(data)),
		MimeType: contentType,
	}, nil
}
