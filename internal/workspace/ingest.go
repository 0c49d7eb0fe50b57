package workspace

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ScanLimits bounds one ingestion run.
type ScanLimits struct {
	MaxFiles      int
	MaxFileBytes  int64
	MaxTotalBytes int64
}

func DefaultScanLimits() ScanLimits {
	return ScanLimits{
		MaxFiles:      1000,
		MaxFileBytes:  5_000_000,
		MaxTotalBytes: 50_000_000,
	}
}

type ScannedFile struct {
	Path    string
	Content string
}

type ScanResult struct {
	Included   []ScannedFile
	Skipped    []string
	TotalBytes int64
}

// excludedNames covers version control, dependency and cache directories,
// lock files, build output, and environment files.
var excludedNames = map[string]struct{}{
	".DS_Store": {}, "Thumbs.db": {}, ".gitignore": {}, ".python-version": {},
	"uv.lock": {}, ".uv": {}, "uvenv": {}, ".uvenv": {}, ".venv": {}, "venv": {},
	"__pycache__": {}, ".pytest_cache": {}, ".coverage": {}, ".mypy_cache": {},
	"node_modules": {}, "package-lock.json": {}, "yarn.lock": {}, "pnpm-lock.yaml": {},
	".next": {}, ".nuxt": {}, "dist": {}, "build": {}, ".cache": {}, ".parcel-cache": {},
	".turbo": {}, ".vercel": {}, ".output": {}, ".contentlayer": {},
	"out": {}, "coverage": {}, ".nyc_output": {}, "storybook-static": {},
	"vendor": {}, "go.sum": {},
	".env": {}, ".env.local": {}, ".env.development": {}, ".env.production": {},
	".git": {}, ".svn": {}, ".hg": {}, "CVS": {},
}

// excludedExtensions covers binary, media, archive, and document formats.
var excludedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".svg": {}, ".webp": {}, ".avif": {},
	".mp4": {}, ".webm": {}, ".mov": {}, ".mp3": {}, ".wav": {}, ".ogg": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".7z": {}, ".rar": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".pyc": {}, ".pyo": {}, ".pyd": {}, ".egg": {}, ".whl": {},
	".db": {}, ".sqlite": {}, ".sqlite3": {}, ".log": {},
	".map": {}, ".min.js": {}, ".min.css": {},
	".tmp": {}, ".temp": {},
	".ttf": {}, ".otf": {}, ".woff": {}, ".woff2": {}, ".eot": {},
}

// binarySampleSize is how many leading bytes are sniffed for a null byte.
const binarySampleSize = 1024

// Ingester walks a directory tree and collects readable text files for
// conversation context. It never writes anything.
type Ingester struct {
	sandbox *Sandbox
	log     *zap.Logger
}

func NewIngester(sandbox *Sandbox, log *zap.Logger) *Ingester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ingester{sandbox: sandbox, log: log}
}

// Scan walks the tree rooted at root in lexical (deterministic) order.
// Hidden and excluded entries land in Skipped; files above MaxFileBytes,
// files that would push the total over MaxTotalBytes, and files that sniff
// as binary are skipped too. The walk stops outright once MaxFiles are
// collected or MaxTotalBytes is reached; entries never visited are not
// reported.
func (in *Ingester) Scan(root string, limits ScanLimits) (ScanResult, error) {
	resolvedRoot, err := in.sandbox.Resolve(root)
	if err != nil {
		return ScanResult{}, err
	}

	var res ScanResult
	walkErr := filepath.WalkDir(resolvedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if len(res.Included) >= limits.MaxFiles || res.TotalBytes >= limits.MaxTotalBytes {
			return fs.SkipAll
		}

		rel, err := filepath.Rel(resolvedRoot, path)
		if err != nil {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		if excludedSegment(rel) {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		if _, ok := excludedExtensions[strings.ToLower(filepath.Ext(path))]; ok {
			res.Skipped = append(res.Skipped, path)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		if info.Size() > limits.MaxFileBytes {
			res.Skipped = append(res.Skipped, path+" (exceeds size limit)")
			return nil
		}
		if res.TotalBytes+info.Size() > limits.MaxTotalBytes {
			res.Skipped = append(res.Skipped, path+" (would exceed total size limit)")
			return nil
		}
		if looksBinary(path) {
			res.Skipped = append(res.Skipped, path)
			return nil
		}

		resolved, err := in.sandbox.Resolve(path)
		if err != nil {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		b, err := os.ReadFile(resolved)
		if err != nil {
			res.Skipped = append(res.Skipped, path)
			return nil
		}
		res.Included = append(res.Included, ScannedFile{Path: resolved, Content: string(b)})
		res.TotalBytes += info.Size()
		return nil
	})
	if walkErr != nil {
		return res, walkErr
	}

	in.log.Info("directory scanned",
		zap.String("root", resolvedRoot),
		zap.Int("included", len(res.Included)),
		zap.Int("skipped", len(res.Skipped)),
		zap.Int64("bytes", res.TotalBytes))
	return res, nil
}

// excludedSegment reports whether any segment of the relative path is hidden
// or in the exclusion set, covering files nested under excluded directories.
func excludedSegment(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
		if _, ok := excludedNames[part]; ok {
			return true
		}
	}
	return false
}

// looksBinary samples the first bytes of the file for a null byte. A read
// failure during sampling counts as binary, not as a hard error.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, binarySampleSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}
