// file: internal/fileops/checksum_test.go
// version: 2.0.0
// guid: 1b3c5d7e-9f0a-4b2c-8d4e-6f8a0b2c4d6e

package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.gg")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestChecksum(t *testing.T) {
	path := writeFixture(t, "hello rom world")

	tests := []struct {
		typ  ChecksumType
		want string
	}{
		{ChecksumCRC, "a17cdfcc"},
		{ChecksumMD5, "86d48402deb6b7b18d0ddb3147cf5baa"},
		{ChecksumSHA1, "d553ea08a055f2d64e34577b87ec911ac6be05a6"},
	}
	for _, tt := range tests {
		got, err := Checksum(path, tt.typ)
		require.NoError(t, err, "checksum type %s", tt.typ)
		assert.Equal(t, tt.want, got, "checksum type %s", tt.typ)
	}
}

func TestChecksum_UnsupportedType(t *testing.T) {
	path := writeFixture(t, "data")
	_, err := Checksum(path, ChecksumType("sha256"))
	assert.Error(t, err)
}

func TestChecksum_MissingFile(t *testing.T) {
	_, err := Checksum(filepath.Join(t.TempDir(), "missing"), ChecksumSHA1)
	assert.Error(t, err)
}

func TestParseChecksumType(t *testing.T) {
	for _, valid := range []string{"crc", "md5", "sha1"} {
		typ, err := ParseChecksumType(valid)
		require.NoError(t, err)
		assert.Equal(t, ChecksumType(valid), typ)
	}
	_, err := ParseChecksumType("crc64")
	assert.Error(t, err)
}

func TestGetFileSize(t *testing.T) {
	path := writeFixture(t, "hello rom world")
	size, err := GetFileSize(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello rom world")), size)
}
