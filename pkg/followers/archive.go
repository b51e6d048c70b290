package followers

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yeka/zip"

	"igcollector/pkg/errors"
)

// zipMagic is the local file header signature of a zip archive.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ParseUpload parses a followers export that is either a raw JSON document
// or a zip archive (standard or AES-protected) containing one or more JSON
// files whose name includes "followers". password unlocks protected
// archives; an encrypted archive without a password fails with an error
// wrapping errors.ErrUnsupportedArchive.
func ParseUpload(data []byte, password string) ([]string, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return parseArchive(data, password)
	}
	return Parse(data)
}

func parseArchive(data []byte, password string) ([]string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	seen := make(map[string]struct{})
	found := 0
	for _, file := range reader.File {
		name := strings.ToLower(file.Name)
		if !strings.HasSuffix(name, ".json") || !strings.Contains(name, "followers") {
			continue
		}
		found++

		if file.IsEncrypted() {
			if password == "" {
				return nil, fmt.Errorf("%w: %s is encrypted and no password was given",
					errors.ErrUnsupportedArchive, file.Name)
			}
			file.SetPassword(password)
		}

		content, err := readArchiveFile(file)
		if err != nil {
			if file.IsEncrypted() {
				return nil, fmt.Errorf("%w: %s could not be decrypted: %v",
					errors.ErrUnsupportedArchive, file.Name, err)
			}
			return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
		}

		handles, err := Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name, err)
		}
		for _, h := range handles {
			seen[h] = struct{}{}
		}
	}

	if found == 0 {
		return nil, fmt.Errorf("no followers files found in archive")
	}

	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h)
	}
	sort.Strings(out)
	return out, nil
}

func readArchiveFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
