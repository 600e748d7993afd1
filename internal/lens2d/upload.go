package lens2d

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const UploadTimeout = 10 * time.Second

// S3Cfg points at an S3 compatible bucket where run outputs are published.
type S3Cfg struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
}

// S3CfgFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT, S3_REGION,
// S3_BUCKET and S3_PREFIX.
func S3CfgFromEnv() S3Cfg {
	return S3Cfg{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    os.Getenv("S3_PREFIX"),
	}
}

// Enabled reports whether publishing is configured.
func (c S3Cfg) Enabled() bool { return c.Bucket != "" }

func newS3Client(cfg S3Cfg) (*s3.S3, error) {
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// objectKey is <prefix>/<runID>/<file name>.
func objectKey(prefix, runID, file string) string {
	return path.Join(prefix, runID, filepath.Base(file))
}

func contentType(file string) string {
	if t := mime.TypeByExtension(filepath.Ext(file)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// uploadFiles puts every file under the run's key prefix and returns the
// keys written.
func uploadFiles(ctx context.Context, api s3iface.S3API, cfg S3Cfg, runID string, files []string) ([]string, error) {
	keys := make([]string, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return keys, err
		}
		key := objectKey(cfg.Prefix, runID, f)
		if err := uploadOne(ctx, api, cfg.Bucket, key, data, contentType(f)); err != nil {
			return keys, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func uploadOne(ctx context.Context, api s3iface.S3API, bucket, key string, data []byte, ctype string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(ctype),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	DebugLog("Uploaded %s to S3 (%d bytes)", key, size)
	return nil
}
