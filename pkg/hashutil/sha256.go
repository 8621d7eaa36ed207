// Package hashutil computes SHA-256 digests of files, readers and byte
// slices, hex encoded.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Sum returns the hex SHA-256 of data.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// SumReader streams r through SHA-256.
func SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hash stream: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumFile returns the hex SHA-256 of the named file.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	return SumReader(f)
}

// FileDigest pairs a path with its digest for directory hashing.
type FileDigest struct {
	Path   string
	Digest string
}

// SumDir hashes every regular file under root and returns the results
// sorted by path. Paths are relative to root.
func SumDir(root string) ([]FileDigest, error) {
	var results []FileDigest

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		digest, err := SumFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		results = append(results, FileDigest{Path: rel, Digest: digest})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results, nil
}
