package asset

import (
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// KeyGenerator derives storage keys from the current time and the original
// file extension. Keys from one generator are strictly increasing, so two
// uploads in the same clock tick still get distinct keys.
type KeyGenerator struct {
	now  func() time.Time
	mu   sync.Mutex
	last int64
}

// NewKeyGenerator returns a generator reading the given clock. A nil clock
// means time.Now.
func NewKeyGenerator(now func() time.Time) *KeyGenerator {
	if now == nil {
		now = time.Now
	}
	return &KeyGenerator{now: now}
}

// Next returns a new key such as "1730000000123456789.jpg".
func (g *KeyGenerator) Next(fileName string) string {
	g.mu.Lock()
	n := g.now().UnixNano()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	g.mu.Unlock()

	return strconv.FormatInt(n, 10) + "." + extension(fileName)
}

// extension returns the lower-cased extension of name, or "bin" when it has
// none or it is not plain alphanumeric.
func extension(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return "bin"
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return "bin"
		}
	}
	return ext
}

// KeyFromRef extracts the storage key from a stored image reference: the
// trailing path segment of a URL, or the reference itself when it is a bare
// key. It returns "" when no key can be derived.
func KeyFromRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	p := ref
	if u, err := url.Parse(ref); err == nil {
		p = u.EscapedPath()
	} else if i := strings.IndexAny(ref, "?#"); i >= 0 {
		p = ref[:i]
	}

	if strings.HasSuffix(p, "/") {
		return ""
	}
	key := path.Base(p)
	if unescaped, err := url.PathUnescape(key); err == nil {
		key = unescaped
	}
	if key == "." || key == "/" || key == "" {
		return ""
	}
	return key
}

// isAbsoluteURL reports whether ref is already a fully-qualified http(s) URL.
func isAbsoluteURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
