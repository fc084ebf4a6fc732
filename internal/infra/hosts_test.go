package infra

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHosts = "127.0.0.1\tlocalhost\n::1\tlocalhost\n192.168.1.10\tnas.local\n"

func newTestHostsFile(t *testing.T, content string) *HostsFile {
	t.Helper()
	dir := t.TempDir()
	hostsPath := filepath.Join(dir, "hosts")
	require.NoError(t, os.WriteFile(hostsPath, []byte(content), 0644))
	return NewHostsFileWithPaths(hostsPath, filepath.Join(dir, "hosts.backup"), nil)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestHostsFile_EnsureBackup(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.EnsureBackup())
	assert.Equal(t, sampleHosts, readFile(t, h.BackupPath()))
}

func TestHostsFile_EnsureBackupNeverOverwritesNonEmpty(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)
	require.NoError(t, h.EnsureBackup())

	// Hosts file now differs (e.g. blocking entries present). The backup
	// must keep the pristine content.
	require.NoError(t, h.ApplyBlock([]string{"example.com"}))
	require.NoError(t, h.EnsureBackup())
	assert.Equal(t, sampleHosts, readFile(t, h.BackupPath()))
}

func TestHostsFile_EnsureBackupRefreshesEmptyBackup(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)
	require.NoError(t, os.WriteFile(h.BackupPath(), []byte("  \n"), 0644))

	require.NoError(t, h.EnsureBackup())
	assert.Equal(t, sampleHosts, readFile(t, h.BackupPath()))
}

func TestHostsFile_ApplyBlockInjectsRegion(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.ApplyBlock([]string{"example.com", "other.com"}))

	content := readFile(t, h.HostsPath())
	assert.True(t, strings.HasPrefix(content, sampleHosts), "original content preserved")
	assert.Contains(t, content, beginMarker+"\n127.0.0.1\texample.com\n127.0.0.1\tother.com\n"+endMarker+"\n")
}

func TestHostsFile_ApplyBlockIdempotent(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)
	domains := []string{"example.com", "other.com"}

	require.NoError(t, h.ApplyBlock(domains))
	require.NoError(t, h.ApplyBlock(domains))

	content := readFile(t, h.HostsPath())
	assert.Equal(t, 1, strings.Count(content, beginMarker))
	assert.Equal(t, 1, strings.Count(content, endMarker))
	assert.Equal(t, 1, strings.Count(content, "127.0.0.1\texample.com"))
	assert.Equal(t, 1, strings.Count(content, "127.0.0.1\tother.com"))
}

func TestHostsFile_ApplyBlockMarkerExclusivity(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.ApplyBlock([]string{"a.com"}))
	require.NoError(t, h.ApplyBlock([]string{"b.com"}))
	require.NoError(t, h.ApplyBlock([]string{"c.com", "d.com"}))

	content := readFile(t, h.HostsPath())
	assert.Equal(t, 1, strings.Count(content, beginMarker))
	assert.Equal(t, 1, strings.Count(content, endMarker))
	assert.NotContains(t, content, "a.com")
	assert.NotContains(t, content, "b.com")
	assert.Contains(t, content, "127.0.0.1\tc.com")
	assert.Contains(t, content, "127.0.0.1\td.com")
}

func TestHostsFile_ApplyBlockSkipsBlankAndDuplicates(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.ApplyBlock([]string{"example.com", "  ", "", "example.com"}))

	content := readFile(t, h.HostsPath())
	assert.Equal(t, 1, strings.Count(content, "example.com"))
	assert.NotContains(t, content, "127.0.0.1\t  \n")
}

// The presence check is raw substring containment against the whole file
// content. A domain that is a substring of an existing entry is skipped.
// Documented simplification, pinned here on purpose.
func TestHostsFile_ApplyBlockSubstringContainment(t *testing.T) {
	h := newTestHostsFile(t, "10.0.0.1\tnotasite.a.com\n")

	require.NoError(t, h.ApplyBlock([]string{"a.com", "b.com"}))

	content := readFile(t, h.HostsPath())
	assert.NotContains(t, content, "127.0.0.1\ta.com")
	assert.Contains(t, content, "127.0.0.1\tb.com")
}

// Excision must cut exactly through the end of the closing marker line.
// Host entries that follow the region have to survive re-patching.
func TestHostsFile_ExcisionPreservesTrailingContent(t *testing.T) {
	trailing := "10.1.1.1\tprinter.local\n"
	content := sampleHosts +
		"\n" + beginMarker + "\n127.0.0.1\told.com\n" + endMarker + "\n" +
		trailing
	h := newTestHostsFile(t, content)

	require.NoError(t, h.ApplyBlock([]string{"new.com"}))

	got := readFile(t, h.HostsPath())
	assert.Contains(t, got, trailing)
	assert.NotContains(t, got, "old.com")
	assert.Equal(t, 1, strings.Count(got, beginMarker))
}

func TestHostsFile_RemoveBlockRestoresBackup(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.EnsureBackup())
	require.NoError(t, h.ApplyBlock([]string{"example.com"}))
	require.NoError(t, h.RemoveBlock())

	assert.Equal(t, sampleHosts, readFile(t, h.HostsPath()))
}

func TestHostsFile_RemoveBlockWithoutBackupIsNoop(t *testing.T) {
	h := newTestHostsFile(t, sampleHosts)

	require.NoError(t, h.RemoveBlock())
	assert.Equal(t, sampleHosts, readFile(t, h.HostsPath()))
}

// Round-trip: ensureBackup; applyBlock; removeBlock yields byte-identical
// content for any starting file without a pre-existing marker.
func TestHostsFile_RoundTrip(t *testing.T) {
	contents := []string{
		sampleHosts,
		"",
		"# comment only\n",
		"127.0.0.1 localhost", // no trailing newline
	}

	for _, original := range contents {
		h := newTestHostsFile(t, original)
		require.NoError(t, h.EnsureBackup())
		require.NoError(t, h.ApplyBlock([]string{"example.com", "other.com"}))
		require.NoError(t, h.RemoveBlock())
		assert.Equal(t, original, readFile(t, h.HostsPath()))
	}
}

func TestExciseMarkerRegion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "no marker",
			content: sampleHosts,
			want:    sampleHosts,
		},
		{
			name:    "region at end",
			content: sampleHosts + "\n" + beginMarker + "\n127.0.0.1\tx.com\n" + endMarker + "\n",
			want:    sampleHosts + "\n",
		},
		{
			name:    "region followed by content",
			content: beginMarker + "\n127.0.0.1\tx.com\n" + endMarker + "\nafter\n",
			want:    "after\n",
		},
		{
			name:    "closing marker without trailing newline",
			content: beginMarker + "\n" + endMarker,
			want:    "",
		},
		{
			name:    "unterminated region left untouched",
			content: sampleHosts + beginMarker + "\n127.0.0.1\tx.com\n",
			want:    sampleHosts + beginMarker + "\n127.0.0.1\tx.com\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exciseMarkerRegion(tt.content))
		})
	}
}

func TestDefaultHostsPath(t *testing.T) {
	// The test host must be one of the supported platforms.
	path, err := DefaultHostsPath()
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}
