package exporters

import (
  "context"
  "fmt"
  "io"
  "os"
  "path/filepath"
  "sort"
  "strings"

  "gocloud.dev/blob"
  "gocloud.dev/blob/fileblob"
  _ "gocloud.dev/blob/gcsblob"
  _ "gocloud.dev/blob/s3blob"
)

// Store writes export files to a bucket: a local directory, s3:// or gs://.
type Store struct {
  Bucket *blob.Bucket
}

// NewStore opens url, or the local directory dir when url is empty.
func NewStore(ctx context.Context, url string, dir string) (*Store, error) {
  if url == "" {
    path, err := filepath.Abs(dir)
    if err != nil {
      return nil, err
    }
    if err := os.MkdirAll(path, 0755); err != nil {
      return nil, fmt.Errorf("create export dir %s: %w", path, err)
    }
    bucket, err := fileblob.OpenBucket(path, nil)
    if err != nil {
      return nil, fmt.Errorf("open export dir %s: %w", path, err)
    }
    return &Store{Bucket: bucket}, nil
  }

  bucket, err := blob.OpenBucket(ctx, url)
  if err != nil {
    return nil, fmt.Errorf("open bucket %s: %w", url, err)
  }
  return &Store{Bucket: bucket}, nil
}

func (s *Store) Write(ctx context.Context, key string, data []byte) error {
  w, err := s.Bucket.NewWriter(ctx, key, nil)
  if err != nil {
    return fmt.Errorf("create writer for %s: %w", key, err)
  }
  if _, err := w.Write(data); err != nil {
    w.Close()
    return fmt.Errorf("write data to %s: %w", key, err)
  }
  if err := w.Close(); err != nil {
    return fmt.Errorf("close writer for %s: %w", key, err)
  }
  return nil
}

func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
  data, err := s.Bucket.ReadAll(ctx, key)
  if err != nil {
    return nil, fmt.Errorf("read %s: %w", key, err)
  }
  return data, nil
}

// List returns the sorted keys under prefix ending with suffix.
func (s *Store) List(ctx context.Context, prefix string, suffix string) ([]string, error) {
  var keys []string
  iter := s.Bucket.List(&blob.ListOptions{Prefix: prefix})
  for {
    obj, err := iter.Next(ctx)
    if err == io.EOF {
      break
    }
    if err != nil {
      return nil, fmt.Errorf("list %s: %w", prefix, err)
    }
    if !obj.IsDir && strings.HasSuffix(obj.Key, suffix) {
      keys = append(keys, obj.Key)
    }
  }
  sort.Strings(keys)
  return keys, nil
}

func (s *Store) Close() error {
  return s.Bucket.Close()
}
