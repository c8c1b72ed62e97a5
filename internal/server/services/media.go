// This file implements MediaService: video and short records plus presigned
// upload URLs against an S3-compatible backend (MinIO in development).
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmaia/clipstream/internal/common"
	"github.com/dmaia/clipstream/internal/server/config"
	"github.com/dmaia/clipstream/internal/server/models"
	"github.com/dmaia/clipstream/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Seam functions so tests can stub the AWS SDK without network access.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// CreateVideoInput carries the caller-supplied fields of a new video record.
type CreateVideoInput struct {
	Title        string
	Description  string
	URL          string
	ThumbnailURL string
	Metadata     json.RawMessage
}

// CreateShortInput carries the caller-supplied fields of a new short record.
type CreateShortInput struct {
	VideoID     int64
	Title       string
	Description string
	Metadata    json.RawMessage
}

// UploadTicket is a one-shot presigned PUT target for a media object.
type UploadTicket struct {
	Key       string
	UploadURL string
}

// MediaService provides CRUD over video and short records, scoped to the
// owning account, plus presigned upload URLs.
type MediaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewMediaService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *MediaService {
	return &MediaService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// CreateVideo records a video owned by userID. Title and URL are required.
func (s *MediaService) CreateVideo(ctx context.Context, userID int64, in CreateVideoInput) (*models.Video, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if strings.TrimSpace(in.URL) == "" {
		return nil, fmt.Errorf("%w: url is required", common.ErrorValidation)
	}

	repo := s.repomanager.Videos(s.db)
	video, err := repo.Create(ctx, &models.Video{
		UserID:       userID,
		Title:        in.Title,
		Description:  in.Description,
		URL:          in.URL,
		ThumbnailURL: in.ThumbnailURL,
		Metadata:     in.Metadata,
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return video, nil
}

// GetVideo returns the video only when it belongs to userID. A foreign
// video reads the same as a missing one.
func (s *MediaService) GetVideo(ctx context.Context, userID, videoID int64) (*models.Video, error) {
	repo := s.repomanager.Videos(s.db)
	video, err := repo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if video.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return video, nil
}

func (s *MediaService) ListVideos(ctx context.Context, userID int64) ([]*models.Video, error) {
	repo := s.repomanager.Videos(s.db)
	list, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

// CreateShort records a short derived from one of the caller's videos. The
// referenced video must exist and belong to userID.
func (s *MediaService) CreateShort(ctx context.Context, userID int64, in CreateShortInput) (*models.Short, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	if _, err := s.GetVideo(ctx, userID, in.VideoID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Shorts(s.db)
	short, err := repo.Create(ctx, &models.Short{
		UserID:      userID,
		VideoID:     in.VideoID,
		Title:       in.Title,
		Description: in.Description,
		Metadata:    in.Metadata,
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return short, nil
}

// ListShorts lists the caller's shorts, optionally narrowed to one video
// (videoID > 0).
func (s *MediaService) ListShorts(ctx context.Context, userID, videoID int64) ([]*models.Short, error) {
	repo := s.repomanager.Shorts(s.db)

	var list []*models.Short
	var err error
	if videoID > 0 {
		list, err = repo.ListByVideo(ctx, userID, videoID)
	} else {
		list, err = repo.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

func randomStorageKey(userID int64) string {
	d := time.Now()
	return fmt.Sprintf("uploads/%d/%d/%d/%d/%v", userID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *MediaService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// RequestUpload mints a presigned PUT URL (15 minutes) under a fresh
// per-user storage key. The client uploads directly to object storage and
// then records the resulting location via CreateVideo.
func (s *MediaService) RequestUpload(ctx context.Context, userID int64) (*UploadTicket, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := randomStorageKey(userID)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &UploadTicket{Key: key, UploadURL: req.URL}, nil
}
