package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/models"
	"github.com/languagesphere/server/internal/server/repositories/repomanager"
)

// Seams for testing the AWS SDK calls without network access.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// SameOriginPDFPath is the streaming endpoint handed out when neither an
// external URL nor S3 storage is configured.
const SameOriginPDFPath = "/payment/pdf"

// ErrPDFNotFound means no configured PDF path pointed at an existing file.
// It matches common.ErrorNotFound but lets the transport layer report the
// missing resource more precisely than a missing user.
var ErrPDFNotFound = fmt.Errorf("pdf file: %w", common.ErrorNotFound)

// BookService gates access to the book PDF by the user's entitlement and
// resolves where the resource is served from: a configured external URL, a
// presigned S3 GET URL, or the same-origin streaming endpoint.
type BookService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewBookService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *BookService {
	return &BookService{db: db, repomanager: m, config: cfg}
}

// checkEntitlement returns nil when the user may access the book PDF.
// The test-mode bypass is resolved once at startup into the config; it must
// be off in any real deployment.
func (s *BookService) checkEntitlement(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if s.config.TestModeBypass {
		return nil
	}
	if !user.Payments.PaidFor(models.ProductBook) {
		return common.ErrorPaymentRequired
	}
	return nil
}

// ResolveURL returns a location for the book PDF plus an advisory validity
// window in seconds. The window is cryptographically enforced only for
// presigned S3 URLs; for the other sources it is a caching hint.
func (s *BookService) ResolveURL(ctx context.Context, userID string) (string, int, error) {
	if err := s.checkEntitlement(ctx, userID); err != nil {
		return "", 0, err
	}

	expiresIn := int(s.config.PDFURLTTL.Seconds())

	if s.config.PDFURL != "" {
		return s.config.PDFURL, expiresIn, nil
	}

	if s.config.S3Bucket != "" && s.config.S3ObjectKey != "" {
		url, err := s.presignedGetURL(ctx)
		if err != nil {
			return "", 0, err
		}
		return url, expiresIn, nil
	}

	return SameOriginPDFPath, expiresIn, nil
}

// Open returns a reader over the book PDF for streaming, along with the file
// name to report in the response headers. The caller must close the reader;
// aborting the copy on client disconnect releases the file handle.
func (s *BookService) Open(ctx context.Context, userID string) (io.ReadCloser, string, error) {
	if err := s.checkEntitlement(ctx, userID); err != nil {
		return nil, "", err
	}

	for _, path := range s.config.PDFPaths {
		f, err := os.Open(path)
		if err == nil {
			return f, filepath.Base(path), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", err
		}
	}

	return nil, "", ErrPDFNotFound
}

func (s *BookService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
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
		if s.config.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		}
	})

	return newS3PresignClient(client), nil
}

func (s *BookService) presignedGetURL(ctx context.Context) (string, error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket
	key := s.config.S3ObjectKey

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.config.PDFURLTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
