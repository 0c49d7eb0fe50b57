package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngester(t *testing.T) (*Ingester, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewSandbox(root)
	require.NoError(t, err)
	return NewIngester(s, nil), s.Root()
}

func seed(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, content, 0644))
}

func includedPaths(res ScanResult) []string {
	var out []string
	for _, f := range res.Included {
		out = append(out, f.Path)
	}
	return out
}

func TestScanExcludesBinaryAndHidden(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "a.py", []byte(strings.Repeat("x", 10)))
	seed(t, root, "b.png", []byte{0x89, 0x50, 0x4e, 0x47})
	seed(t, root, ".git/config", []byte("[core]\n"))

	res, err := in.Scan(root, DefaultScanLimits())
	require.NoError(t, err)

	require.Len(t, res.Included, 1)
	assert.Equal(t, filepath.Join(root, "a.py"), res.Included[0].Path)
	assert.Equal(t, strings.Repeat("x", 10), res.Included[0].Content)

	skipped := strings.Join(res.Skipped, "\n")
	assert.Contains(t, skipped, filepath.Join(root, "b.png"))
	assert.Contains(t, skipped, filepath.Join(root, ".git", "config"))
}

func TestScanSkipsNullByteContent(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "data.dat", []byte("text\x00more"))
	seed(t, root, "plain.txt", []byte("plain"))

	res, err := in.Scan(root, DefaultScanLimits())
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "plain.txt")}, includedPaths(res))
	assert.Contains(t, strings.Join(res.Skipped, "\n"), "data.dat")
}

func TestScanPerFileSizeLimit(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "big.txt", []byte(strings.Repeat("a", 100)))
	seed(t, root, "small.txt", []byte("ok"))

	limits := ScanLimits{MaxFiles: 10, MaxFileBytes: 50, MaxTotalBytes: 1000}
	res, err := in.Scan(root, limits)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "small.txt")}, includedPaths(res))
	assert.Contains(t, strings.Join(res.Skipped, "\n"), "big.txt (exceeds size limit)")
}

func TestScanStopsAtMaxFiles(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "a.txt", []byte("a"))
	seed(t, root, "b.txt", []byte("b"))
	seed(t, root, "c.txt", []byte("c"))

	limits := ScanLimits{MaxFiles: 2, MaxFileBytes: 100, MaxTotalBytes: 1000}
	res, err := in.Scan(root, limits)
	require.NoError(t, err)

	assert.Len(t, res.Included, 2)
}

func TestScanTotalSizeBound(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "a.txt", []byte(strings.Repeat("a", 40)))
	seed(t, root, "b.txt", []byte(strings.Repeat("b", 40)))
	seed(t, root, "c.txt", []byte(strings.Repeat("c", 40)))

	limits := ScanLimits{MaxFiles: 10, MaxFileBytes: 100, MaxTotalBytes: 90}
	res, err := in.Scan(root, limits)
	require.NoError(t, err)

	assert.LessOrEqual(t, res.TotalBytes, int64(90))
	assert.Len(t, res.Included, 2)
}

func TestScanDeterministicOrder(t *testing.T) {
	in, root := newTestIngester(t)
	seed(t, root, "z.txt", []byte("z"))
	seed(t, root, "a.txt", []byte("a"))
	seed(t, root, "m/n.txt", []byte("n"))

	first, err := in.Scan(root, DefaultScanLimits())
	require.NoError(t, err)
	second, err := in.Scan(root, DefaultScanLimits())
	require.NoError(t, err)

	assert.Equal(t, includedPaths(first), includedPaths(second))
}

func TestScanRejectsOutsideRoot(t *testing.T) {
	in, _ := newTestIngester(t)
	_, err := in.Scan("/etc", DefaultScanLimits())
	assert.ErrorIs(t, err, ErrInvalidPath)
}
