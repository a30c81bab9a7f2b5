package photoset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMetadataFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo information.json")

	err := WriteMetadata(path, []AssetMetadata{
		{FileName: "3.jpg", Size: "z"},
		{FileName: "3_200.jpg", Size: "z"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `[
    {
        "file_name": "3.jpg",
        "size": "z"
    },
    {
        "file_name": "3_200.jpg",
        "size": "z"
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestWriteMetadataOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")

	require.NoError(t, WriteMetadata(path, []AssetMetadata{{FileName: "1.jpg", Size: "x"}, {FileName: "2.jpg", Size: "y"}}))
	require.NoError(t, WriteMetadata(path, []AssetMetadata{{FileName: "7.jpg", Size: "w"}}))

	got, err := ReadMetadata(path)
	require.NoError(t, err)
	assert.Equal(t, []AssetMetadata{{FileName: "7.jpg", Size: "w"}}, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteMetadataEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	require.NoError(t, WriteMetadata(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestWriteMetadataMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "meta.json")
	assert.Error(t, WriteMetadata(path, nil))
}
