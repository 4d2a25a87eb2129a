package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passkeeper/internal/common"
	"github.com/dmitrijs2005/passkeeper/internal/logging"
	sc "github.com/dmitrijs2005/passkeeper/internal/server/config"
	"github.com/dmitrijs2005/passkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// SnapshotVersion is bumped when the export layout changes.
const SnapshotVersion = 1

// Snapshot is the exported vault. Ciphertexts are copied as stored; nothing
// is decrypted on the way out.
type Snapshot struct {
	Version    int              `json:"version"`
	AccountID  string           `json:"account_id"`
	ExportedAt time.Time        `json:"exported_at"`
	Records    []SnapshotRecord `json:"records"`
}

type SnapshotRecord struct {
	ID         string    `json:"id"`
	Site       string    `json:"site"`
	Username   string    `json:"username"`
	Ciphertext string    `json:"ciphertext"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExportResult points at an uploaded snapshot.
type ExportResult struct {
	Key       string
	URL       string
	ExpiresAt time.Time
	Records   int
}

// ExportService writes vault snapshots to S3-compatible storage and hands
// out short-lived download links.
type ExportService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewExportService(m repomanager.RepositoryManager, config *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		repomanager: m,
		config:      config,
		logger:      logger.With("module", "export"),
	}
}

// GetRandomStorageKey returns a fresh object key for ownerID's snapshot.
func GetRandomStorageKey(ownerID string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("exports/%s/%d/%02d/%02d/%v.json", ownerID, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
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

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			// MinIO and friends
			o.UsePathStyle = true
		}
	}), nil
}

// Export uploads ownerID's records and returns a presigned GET URL.
func (s *ExportService) Export(ctx context.Context, ownerID string) (*ExportResult, error) {
	if ownerID == "" {
		return nil, common.ErrUnauthorized
	}
	if !s.config.ExportEnabled() {
		return nil, common.ErrExportDisabled
	}

	records, err := s.repomanager.Records().Dump(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dump records: %w", err)
	}

	snap := Snapshot{
		Version:    SnapshotVersion,
		AccountID:  ownerID,
		ExportedAt: time.Now().UTC(),
		Records:    make([]SnapshotRecord, 0, len(records)),
	}
	for _, r := range records {
		snap.Records = append(snap.Records, SnapshotRecord{
			ID:         r.ID,
			Site:       r.Site,
			Username:   r.Username,
			Ciphertext: r.Ciphertext,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(ownerID)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	expiry := s.config.ExportURLExpiry
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, fmt.Errorf("presign snapshot: %w", err)
	}

	s.logger.Info(ctx, "vault exported", "owner_id", ownerID, "key", key, "records", len(records))

	return &ExportResult{
		Key:       key,
		URL:       req.URL,
		ExpiresAt: time.Now().Add(expiry),
		Records:   len(records),
	}, nil
}
