package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codemend/codemend/internal/ignore"
)

// defaultDirExcludes never contain user source worth fixing.
var defaultDirExcludes = map[string]bool{
	".git":         true,
	"node_modules": true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".vercel":      true,
	".next":        true,
}

func isDefaultDirExcluded(name string) bool {
	return defaultDirExcludes[name]
}

func isDefaultFileExcluded(lower string) bool {
	switch {
	case strings.HasSuffix(lower, ".min.js"),
		strings.HasSuffix(lower, ".map"),
		strings.HasSuffix(lower, ".lock"),
		strings.HasSuffix(lower, "package-lock.json"),
		strings.HasSuffix(lower, ".svg"),
		strings.HasSuffix(lower, ".png"),
		strings.HasSuffix(lower, ".jpg"),
		strings.HasSuffix(lower, ".ico"),
		strings.HasSuffix(lower, ".woff"),
		strings.HasSuffix(lower, ".woff2"):
		return true
	}
	return false
}

// Walk traverses the working tree and invokes handle for each eligible file.
// Files that cannot be read are reported through skip and the walk continues;
// an unreadable or missing root aborts with an error.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(rel string, data []byte), skip func(rel string, err error)) error {
	if st, err := os.Stat(cfg.Root); err != nil {
		return fmt.Errorf("scan root %s: %w", cfg.Root, err)
	} else if !st.IsDir() {
		return fmt.Errorf("scan root %s: not a directory", cfg.Root)
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if p == cfg.Root {
				return fmt.Errorf("scan root %s: %w", cfg.Root, err)
			}
			rel, _ := filepath.Rel(cfg.Root, p)
			skip(rel, err)
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, _ := filepath.Rel(cfg.Root, p)
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		info, _ := d.Info()
		if info != nil && cfg.MaxBytes > 0 && info.Size() > cfg.MaxBytes {
			return nil
		}
		lower := strings.ToLower(rel)
		if cfg.DefaultExcludes && isDefaultFileExcluded(lower) {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			skip(rel, err)
			return nil
		}
		if strings.Contains(string(b), "codemend:ignore-file") {
			return nil
		}
		if looksBinary(b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
