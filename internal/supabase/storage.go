package supabase

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// StorageClient wraps one bucket. The service keeps two instances: one for
// print-ready files and one for frontend preview images.
type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string) (*StorageClient, error) {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

func (s *StorageClient) Bucket() string { return s.bucket }

// Upload writes data to storagePath with overwrite allowed, so repeating an
// upload for the same destination is idempotent. Returns the public URL.
func (s *StorageClient) Upload(storagePath string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	upsert := true
	_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(storagePath), nil
}

func (s *StorageClient) Download(storagePath string) ([]byte, error) {
	data, err := s.client.DownloadFile(s.bucket, storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	return data, nil
}

func (s *StorageClient) Delete(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// ListPrefix returns the object names under prefix (directory listing).
func (s *StorageClient) ListPrefix(prefix string) ([]string, error) {
	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: 1000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	names := make([]string, len(files))
	for i, file := range files {
		names[i] = file.Name
	}
	return names, nil
}

// Exists checks whether an object is present by listing its directory.
func (s *StorageClient) Exists(storagePath string) (bool, error) {
	dir := path.Dir(storagePath)
	if dir == "." {
		dir = ""
	}
	names, err := s.ListPrefix(dir)
	if err != nil {
		return false, err
	}
	base := path.Base(storagePath)
	for _, name := range names {
		if name == base {
			return true, nil
		}
	}
	return false, nil
}

func (s *StorageClient) PublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}
