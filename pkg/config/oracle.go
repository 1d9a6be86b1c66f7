package config

import (
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

type pathInfo struct {
	exists bool
	dir    bool
}

// Oracle answers file-existence questions, querying the file system at most once per
// path so that every check of a run sees the same answer.
type Oracle struct {
	fs afero.Fs

	mu      sync.Mutex
	cache   map[string]pathInfo
	queries int
}

// NewOracle creates an oracle backed by fs.
func NewOracle(fs afero.Fs) *Oracle {
	return &Oracle{
		fs:    fs,
		cache: make(map[string]pathInfo),
	}
}

func (o *Oracle) stat(path string) pathInfo {
	key := filepath.Clean(path)

	o.mu.Lock()
	defer o.mu.Unlock()

	if info, ok := o.cache[key]; ok {
		return info
	}

	o.queries++

	var info pathInfo
	if fi, err := o.fs.Stat(key); err == nil {
		info = pathInfo{exists: true, dir: fi.IsDir()}
	}

	o.cache[key] = info

	return info
}

// Exists reports whether path exists.
func (o *Oracle) Exists(path string) bool {
	return o.stat(path).exists
}

// IsFile reports whether path exists and is not a directory.
func (o *Oracle) IsFile(path string) bool {
	info := o.stat(path)
	return info.exists && !info.dir
}

// IsDir reports whether path exists and is a directory.
func (o *Oracle) IsDir(path string) bool {
	info := o.stat(path)
	return info.exists && info.dir
}

// Queries returns how many times the underlying file system was consulted.
func (o *Oracle) Queries() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.queries
}
