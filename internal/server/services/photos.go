package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sc "github.com/dmitrijs2005/skillswap/internal/server/config"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PhotoService hands out presigned S3 URLs for profile photos. The object
// key is what ends up in the user's profile_photo field.
type PhotoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewPhotoService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *PhotoService {
	return &PhotoService{db: db, repomanager: m, config: config}
}

func photoKey(userID string) string {
	d := time.Now()
	return fmt.Sprintf("users/%s/%d/%02d/%v", userID, d.Year(), d.Month(), uuid.New())
}

func (s *PhotoService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a fresh object key for userID and a presigned PUT URL
// for it.
func (s *PhotoService) UploadURL(ctx context.Context, userID string) (key, url string, err error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return "", "", userLookupError(err)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key = photoKey(userID)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

// DownloadURL resolves the user's profile photo. Absolute URLs are returned
// as stored; object keys are presigned.
func (s *PhotoService) DownloadURL(ctx context.Context, userID string) (string, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", userLookupError(err)
	}
	if u.ProfilePhoto == "" {
		return "", errNoPhoto
	}
	if strings.HasPrefix(u.ProfilePhoto, "http://") || strings.HasPrefix(u.ProfilePhoto, "https://") {
		return u.ProfilePhoto, nil
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &u.ProfilePhoto,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
