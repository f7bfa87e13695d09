package attachment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Folder          string
}

func OSSConfigFromEnv() OSSConfig {
	folder := os.Getenv("OSS_FOLDER")
	if folder == "" {
		folder = "leave-attachments"
	}
	return OSSConfig{
		Endpoint:        os.Getenv("OSS_ENDPOINT"),
		AccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
		Bucket:          os.Getenv("OSS_BUCKET"),
		Folder:          strings.Trim(folder, "/"),
	}
}

type ossStore struct {
	bucket  *oss.Bucket
	cfg     OSSConfig
	baseURL string
	logger  *zap.Logger
}

func NewOSSStore(cfg OSSConfig, logger ...*zap.Logger) (Store, error) {
	l := zap.L().Named("attachment.oss")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attachment.oss")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	return &ossStore{
		bucket:  bucket,
		cfg:     cfg,
		baseURL: fmt.Sprintf("https://%s.%s", cfg.Bucket, endpoint),
		logger:  l,
	}, nil
}

func (s *ossStore) Upload(ctx context.Context, data []byte, filename, mimeType string) (*UploadResult, error) {
	key := s.objectKey(filename)

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType(mimeType),
		oss.ContentDisposition("inline"),
		oss.ObjectACL(oss.ACLPublicRead),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(data), opts...); err != nil {
		s.logger.Error("put object failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	viewURL := fmt.Sprintf("%s/%s", s.baseURL, key)
	downloadURL := fmt.Sprintf("%s?response-content-disposition=%s",
		viewURL,
		url.QueryEscape(fmt.Sprintf("attachment; filename=%q", filename)),
	)

	s.logger.Info("object uploaded",
		zap.String("key", key),
		zap.String("mime", mimeType),
		zap.Int("size", len(data)),
	)
	return &UploadResult{
		FileID:      key,
		FileName:    filename,
		ViewURL:     viewURL,
		DownloadURL: downloadURL,
	}, nil
}

func (s *ossStore) Delete(ctx context.Context, fileID string) error {
	err := s.bucket.DeleteObject(fileID, oss.WithContext(ctx))
	if err != nil {
		var svcErr oss.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == 404 {
			s.logger.Debug("delete of absent object treated as success", zap.String("key", fileID))
			return nil
		}
		s.logger.Error("delete object failed", zap.String("key", fileID), zap.Error(err))
		return err
	}
	return nil
}

func (s *ossStore) List(ctx context.Context, cursor string, limit int) ([]StoredObject, string, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	opts := []oss.Option{
		oss.WithContext(ctx),
		oss.Prefix(s.cfg.Folder + "/"),
		oss.MaxKeys(limit),
	}
	if cursor != "" {
		opts = append(opts, oss.ContinuationToken(cursor))
	}

	res, err := s.bucket.ListObjectsV2(opts...)
	if err != nil {
		s.logger.Error("list objects failed", zap.Error(err))
		return nil, "", err
	}

	objects := make([]StoredObject, 0, len(res.Objects))
	for _, obj := range res.Objects {
		objects = append(objects, StoredObject{
			ID:        obj.Key,
			Name:      path.Base(obj.Key),
			SizeBytes: obj.Size,
		})
	}

	next := ""
	if res.IsTruncated {
		next = res.NextContinuationToken
	}
	return objects, next, nil
}

// objectKey flattens the original filename into the configured folder with a
// random prefix so collisions between identically named uploads cannot occur.
func (s *ossStore) objectKey(filename string) string {
	base := strings.ReplaceAll(path.Base(filename), " ", "_")
	return fmt.Sprintf("%s/%s-%s", s.cfg.Folder, uuid.NewString(), base)
}
