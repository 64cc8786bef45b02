// file: internal/fileops/checksum.go
// version: 2.0.0
// guid: 0a1b2c3d-4e5f-6a7b-8c9d-0e1f2a3b4c5d

package fileops

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
)

// ChecksumType selects the digest algorithm for Checksum. The set matches
// what DAT manifests carry per ROM.
type ChecksumType string

const (
	ChecksumCRC  ChecksumType = "crc"
	ChecksumMD5  ChecksumType = "md5"
	ChecksumSHA1 ChecksumType = "sha1"
)

// ParseChecksumType validates a user-supplied checksum type name.
func ParseChecksumType(s string) (ChecksumType, error) {
	switch ChecksumType(s) {
	case ChecksumCRC, ChecksumMD5, ChecksumSHA1:
		return ChecksumType(s), nil
	}
	return "", fmt.Errorf("unsupported checksum type %q (choose crc, md5 or sha1)", s)
}

// Checksum computes the requested digest of a file, hex encoded. CRC32 uses
// the IEEE polynomial and is zero-padded to eight characters, matching DAT
// manifest formatting.
func Checksum(filePath string, typ ChecksumType) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var hasher hash.Hash
	switch typ {
	case ChecksumCRC:
		hasher = crc32.NewIEEE()
	case ChecksumMD5:
		hasher = md5.New()
	case ChecksumSHA1:
		hasher = sha1.New()
	default:
		return "", fmt.Errorf("unsupported checksum type %q (choose crc, md5 or sha1)", typ)
	}

	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// GetFileSize returns the size of a file in bytes
func GetFileSize(filePath string) (int64, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
