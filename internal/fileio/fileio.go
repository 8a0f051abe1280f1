// Package fileio opens inputs memory-mapped or zstd-compressed by extension
// and writes outputs atomically.
package fileio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/natefinch/atomic"
	"golang.org/x/exp/mmap"
)

const zstdExt = ".zst"

func IsCompressed(name string) bool {
	return strings.HasSuffix(name, zstdExt)
}

// TrimCompression strips a trailing .zst.
func TrimCompression(name string) string {
	return strings.TrimSuffix(name, zstdExt)
}

func Open(name string) (io.ReadCloser, error) {
	if IsCompressed(name) {
		file, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("can`t open file: %w", err)
		}
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("can`t create zstd reader: %w", err)
		}
		return &zstdReadCloser{dec: dec, file: file}, nil
	}

	r, err := mmap.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}
	return &mmapReadCloser{Reader: io.NewSectionReader(r, 0, int64(r.Len())), r: r}, nil
}

type mmapReadCloser struct {
	io.Reader
	r *mmap.ReaderAt
}

func (m *mmapReadCloser) Close() error {
	return m.r.Close()
}

type zstdReadCloser struct {
	dec  *zstd.Decoder
	file *os.File
}

func (z *zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z *zstdReadCloser) Close() error {
	z.dec.Close()
	return z.file.Close()
}

// WriteAtomic renders the file with write and replaces name in one step, so
// readers never see a partial file. Names ending in .zst are compressed.
func WriteAtomic(name string, write func(w io.Writer) error) error {
	buf := &bytes.Buffer{}

	if IsCompressed(name) {
		enc, err := zstd.NewWriter(buf)
		if err != nil {
			return err
		}
		if err := write(enc); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}
	} else if err := write(buf); err != nil {
		return err
	}

	return atomic.WriteFile(name, buf)
}
