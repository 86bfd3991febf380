package quran

import (
	"encoding/hex"
	"io"
	"os"

	"github.com/zeebo/blake3"

	"github.com/hifzlab/isnad/core/errors"
)

// Checksum returns the BLAKE3 hex digest of the file at path.
// Checksums are recorded at load time so deployments can pin the exact
// corpus edition they validated against.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.NewIO("open", path, err)
	}
	defer f.Close()

	h := blake3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.NewIO("read", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify computes the BLAKE3 digest of the file at path and compares it to
// wantHex. A mismatch is returned as a ChecksumError.
func Verify(path, wantHex string) error {
	got, err := Checksum(path)
	if err != nil {
		return err
	}
	if got != wantHex {
		return &errors.ChecksumError{Path: path, Want: wantHex, Got: got}
	}
	return nil
}
