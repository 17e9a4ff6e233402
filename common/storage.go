package common

import (
  "fmt"

  "golang.org/x/sys/unix"
)

// FreeSpace returns the bytes available to unprivileged users on the filesystem holding path.
func FreeSpace(path string) (uint64, error) {
  var stat unix.Statfs_t
  if err := unix.Statfs(path, &stat); err != nil {
    return 0, fmt.Errorf("statfs %s: %w", path, err)
  }
  return stat.Bavail * uint64(stat.Bsize), nil
}

// EnsureFreeSpace fails when path has less than minMB megabytes available.
func EnsureFreeSpace(path string, minMB int) error {
  if minMB <= 0 {
    return nil
  }
  free, err := FreeSpace(path)
  if err != nil {
    return err
  }
  if free < uint64(minMB)<<20 {
    return fmt.Errorf("%s has %d MB free, need %d MB", path, free>>20, minMB)
  }
  return nil
}
