package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/mcpclient/internal/logging"
	sc "github.com/dmitrijs2005/mcpclient/internal/server/config"
	"github.com/dmitrijs2005/mcpclient/internal/server/models"
	"github.com/google/uuid"
)

const exportURLValidity = 15 * time.Minute

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

// ExportResult points at an uploaded export document.
type ExportResult struct {
	Key   string
	URL   string
	Count int
}

type exportDocument struct {
	ExportedAt time.Time        `json:"exported_at"`
	ExportedBy string           `json:"exported_by"`
	Records    []*models.Record `json:"records"`
}

// ExportService snapshots the record store into object storage.
type ExportService struct {
	records *RecordService
	audit   *AuditLog
	config  *sc.Config
	logger  logging.Logger
	now     func() time.Time
}

func NewExportService(records *RecordService, audit *AuditLog, config *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		records: records,
		audit:   audit,
		config:  config,
		logger:  logger.With("module", "export"),
		now:     time.Now,
	}
}

func exportStorageKey(d time.Time) string {
	return fmt.Sprintf("exports/%d/%d/%d/%v.json", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getS3Clients(ctx context.Context) (*s3.Client, *s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, newS3PresignClient(client), nil
}

// Export uploads every record as one JSON document and returns a presigned
// download URL for it.
func (s *ExportService) Export(ctx context.Context, caller models.Principal) (*ExportResult, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing records: %w", err)
	}
	if records == nil {
		records = []*models.Record{}
	}

	now := s.now()
	payload, err := json.Marshal(exportDocument{ExportedAt: now.UTC(), ExportedBy: caller.Username, Records: records})
	if err != nil {
		return nil, err
	}

	client, presignClient, err := s.getS3Clients(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(now)

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	s.logger.Info(ctx, "records exported", "key", key, "count", len(records))
	s.audit.Record(ctx, caller.Username, models.ActionExportRecords, fmt.Sprintf("count=%d key=%s", len(records), key))

	return &ExportResult{Key: key, URL: req.URL, Count: len(records)}, nil
}
