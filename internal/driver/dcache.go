package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"quill/internal/diag"
	"quill/internal/source"
)

// Bump when the payload format changes; stale entries are ignored.
const cacheSchemaVersion uint16 = 1

// Digest keys cache entries by passage content.
type Digest = [sha256.Size]byte

// DiskCache stores per-passage check results keyed by content hash.
// Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedDiag struct {
	Code  uint16
	Sev   uint8
	Start uint32
	End   uint32
	Msg   string
}

type cachedLink struct {
	Target string
	Start  uint32
	End    uint32
}

// DiskPayload is the serialized check result for one passage body.
// Links ride along so project-level dead-link analysis works without
// reparsing cached passages.
type DiskPayload struct {
	Schema uint16
	Diags  []cachedDiag
	Links  []cachedLink
}

// OpenDiskCache initializes the cache at the standard XDG location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "passages", hexKey+".mp")
}

// Put writes a payload atomically: temp file, then rename.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The first result is false on a miss or a
// schema mismatch; decoding failures surface as errors so callers can
// fall back to a fresh parse.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll clears every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "passages"))
}

// newPayload flattens a passage result for caching. Notes are dropped:
// cached passages replay only their primary findings.
func newPayload(bag *diag.Bag, links []LinkRef) *DiskPayload {
	p := &DiskPayload{Schema: cacheSchemaVersion}
	for _, d := range bag.Items() {
		p.Diags = append(p.Diags, cachedDiag{
			Code:  uint16(d.Code),
			Sev:   uint8(d.Severity),
			Start: d.Primary.Start,
			End:   d.Primary.End,
			Msg:   d.Message,
		})
	}
	for _, l := range links {
		p.Links = append(p.Links, cachedLink{
			Target: l.Target,
			Start:  l.Span.Start,
			End:    l.Span.End,
		})
	}
	return p
}

// bagFromPayload rehydrates cached diagnostics against a file ID.
func bagFromPayload(p *DiskPayload, file source.FileID, max int) *diag.Bag {
	bag := newBag(max)
	for _, cd := range p.Diags {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(cd.Sev),
			Code:     diag.Code(cd.Code),
			Message:  cd.Msg,
			Primary:  source.Span{File: file, Start: cd.Start, End: cd.End},
		})
	}
	return bag
}

func linksFromPayload(p *DiskPayload, file source.FileID) []LinkRef {
	links := make([]LinkRef, 0, len(p.Links))
	for _, cl := range p.Links {
		links = append(links, LinkRef{
			Target: cl.Target,
			Span:   source.Span{File: file, Start: cl.Start, End: cl.End},
		})
	}
	return links
}
