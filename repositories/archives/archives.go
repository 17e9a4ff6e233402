package archives

import (
  "bytes"
  "fmt"
  "os"

  "github.com/h2non/filetype"
  "github.com/klauspost/compress/gzip"
  "github.com/klauspost/compress/zstd"
  "github.com/tidwall/gjson"

  "scraper.local/geotweets/parsers"
)

const Extension = ".jsonl.zst"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Encode lays pages out as a zstd-compressed fragment stream, one JSON fragment per line.
func Encode(pages []*parsers.Page) ([]byte, error) {
  var buf bytes.Buffer
  encoder, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
  if err != nil {
    return nil, fmt.Errorf("create zstd encoder: %w", err)
  }
  for _, page := range pages {
    for _, fragment := range page.Fragments() {
      if _, err := encoder.Write(append([]byte(compact(fragment)), '\n')); err != nil {
        encoder.Close()
        return nil, err
      }
    }
  }
  if err := encoder.Close(); err != nil {
    return nil, err
  }
  return buf.Bytes(), nil
}

// compact strips the whitespace a fragment carries over from the response body so it stays on one line.
func compact(fragment string) string {
  return gjson.Get(fragment, "@ugly").Raw
}

// Decode reads a fragment stream, plain or compressed with zstd or gzip.
func Decode(data []byte) ([]gjson.Result, error) {
  kind, _ := filetype.Match(data)
  switch {
  case kind.Extension == "gz":
    reader, err := gzip.NewReader(bytes.NewReader(data))
    if err != nil {
      return nil, fmt.Errorf("open gzip stream: %w", err)
    }
    defer reader.Close()
    return parsers.ReadFragments(reader)
  case kind.Extension == "zst" || bytes.HasPrefix(data, zstdMagic):
    decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
    if err != nil {
      return nil, fmt.Errorf("create zstd decoder: %w", err)
    }
    defer decoder.Close()
    data, err = decoder.DecodeAll(data, nil)
    if err != nil {
      return nil, fmt.Errorf("decompress fragments: %w", err)
    }
  }
  return parsers.ReadFragments(bytes.NewReader(data))
}

func ReadFile(path string) ([]gjson.Result, error) {
  data, err := os.ReadFile(path)
  if err != nil {
    return nil, err
  }
  return Decode(data)
}
