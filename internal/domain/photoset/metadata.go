package photoset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteMetadata writes the records as an indented JSON array, replacing any
// previous file. The write goes through a temp file in the same directory.
func WriteMetadata(path string, records []AssetMetadata) error {
	if records == nil {
		records = []AssetMetadata{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".photoset-*.json")
	if err != nil {
		return fmt.Errorf("create metadata temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close metadata: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod metadata: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace metadata file: %w", err)
	}
	return nil
}

// ReadMetadata loads a file written by WriteMetadata.
func ReadMetadata(path string) ([]AssetMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var records []AssetMetadata
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return records, nil
}
