package lens2d

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type fakeS3 struct {
	s3iface.S3API

	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	fail    error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("upload without deadline")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != aws.Int64Value(in.ContentLength) {
		return nil, errors.New("content length mismatch")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := aws.StringValue(in.Bucket) + "/" + aws.StringValue(in.Key)
	f.objects[key] = data
	f.types[key] = aws.StringValue(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestObjectKey(t *testing.T) {
	if k := objectKey("runs", "abc", "/tmp/x/sensor.png"); k != "runs/abc/sensor.png" {
		t.Fatalf("key %q", k)
	}
	if k := objectKey("", "abc", "plot.png"); k != "abc/plot.png" {
		t.Fatalf("key without prefix %q", k)
	}
}

func TestContentType(t *testing.T) {
	if ct := contentType("a.png"); ct != "image/png" {
		t.Fatalf("png content type %q", ct)
	}
	if ct := contentType("a.lensgrid"); ct != "application/octet-stream" {
		t.Fatalf("unknown content type %q", ct)
	}
}

func TestS3CfgFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "")
	if S3CfgFromEnv().Enabled() {
		t.Fatal("publishing must be off without a bucket")
	}
	t.Setenv("S3_BUCKET", "lens")
	t.Setenv("S3_PREFIX", "runs")
	t.Setenv("S3_REGION", "us-east-1")
	cfg := S3CfgFromEnv()
	if !cfg.Enabled() || cfg.Bucket != "lens" || cfg.Prefix != "runs" || cfg.Region != "us-east-1" {
		t.Fatalf("env config wrong: %+v", cfg)
	}
	if _, err := newS3Client(cfg); err != nil {
		t.Fatal(err)
	}
}

func TestUploadFiles(t *testing.T) {
	dir := t.TempDir()
	files := []string{filepath.Join(dir, "sensor.png"), filepath.Join(dir, "grid.raw")}
	for i, f := range files {
		if err := os.WriteFile(f, make([]byte, 10*(i+1)), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	api := newFakeS3()
	cfg := S3Cfg{Bucket: "lens", Prefix: "runs"}
	keys, err := uploadFiles(context.Background(), api, cfg, "run-1", files)
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "runs/run-1/sensor.png" || keys[1] != "runs/run-1/grid.raw" {
		t.Fatalf("keys %v", keys)
	}
	if len(api.objects["lens/runs/run-1/grid.raw"]) != 20 {
		t.Fatal("raw grid not uploaded whole")
	}
	if api.types["lens/runs/run-1/sensor.png"] != "image/png" {
		t.Fatalf("content type %q", api.types["lens/runs/run-1/sensor.png"])
	}
}

func TestUploadFilesErrors(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "a.png")
	if err := os.WriteFile(ok, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	keys, err := uploadFiles(context.Background(), newFakeS3(), S3Cfg{Bucket: "b"}, "r", []string{ok, filepath.Join(dir, "missing.png")})
	if err == nil || len(keys) != 1 {
		t.Fatalf("expected error after first file, got %v (%v)", err, keys)
	}

	boom := errors.New("boom")
	api := newFakeS3()
	api.fail = boom
	if _, err := uploadFiles(context.Background(), api, S3Cfg{Bucket: "b"}, "r", []string{ok}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upload error, got %v", err)
	}
}
