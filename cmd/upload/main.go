// Command upload pushes the book PDF to the configured S3-compatible bucket
// through a presigned PUT URL, so the server can hand out presigned GET URLs
// for it afterwards. Usage: upload <file>.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/languagesphere/server/internal/netx"
	"github.com/languagesphere/server/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	if len(os.Args) < 2 {
		return fmt.Errorf("usage: %s <file>", os.Args[0])
	}
	path := os.Args[1]

	if cfg.S3Bucket == "" || cfg.S3ObjectKey == "" {
		return fmt.Errorf("S3 bucket and object key must be configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		}
	})

	req, err := s3.NewPresignClient(client).PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: &cfg.S3Bucket,
		Key:    &cfg.S3ObjectKey,
	}, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, nil, req.URL, "application/pdf", data); err != nil {
		return err
	}

	fmt.Printf("Uploaded %s to s3://%s/%s\n", path, cfg.S3Bucket, cfg.S3ObjectKey)
	return nil
}
