package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/instantbulletin/document"
)

const (
	maxRemoteImage = 20 << 20 // 20MB
	loadParallel   = 4
	cacheTTL       = 10 * time.Minute
	cacheEntries   = 16
)

// ErrHostNotAllowed is returned for remote images outside the loader's
// allowed hosts.
var ErrHostNotAllowed = errors.New("export: image host not allowed")

// DefaultHosts returns the hosts a loader fetches from when none are
// given: the host of the sample cover image.
func DefaultHosts() []string {
	u, err := url.Parse(document.SampleCoverURL)
	if err != nil {
		return nil
	}
	return []string{u.Hostname()}
}

// Loader resolves image URLs into decoded images. Data URLs decode in
// process; http(s) URLs are fetched from allowed hosts only. Decoded images
// are cached by URL, least recently used first out, for at most cacheTTL.
type Loader struct {
	client *http.Client
	hosts  map[string]bool

	mu    sync.Mutex
	cache map[string]cachedImage
	ttl   time.Duration
	max   int
}

type cachedImage struct {
	img  image.Image
	used time.Time
}

// NewLoader returns a Loader using client for remote fetches from hosts.
// A nil client uses one with a 30s timeout; no hosts means DefaultHosts.
// Redirects are followed only to allowed hosts.
func NewLoader(client *http.Client, hosts ...string) *Loader {
	c := http.Client{Timeout: 30 * time.Second}
	if client != nil {
		c = *client
	}
	if len(hosts) == 0 {
		hosts = DefaultHosts()
	}
	l := &Loader{
		client: &c,
		hosts:  make(map[string]bool, len(hosts)),
		cache:  make(map[string]cachedImage),
		ttl:    cacheTTL,
		max:    cacheEntries,
	}
	for _, h := range hosts {
		l.hosts[strings.ToLower(h)] = true
	}
	l.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if len(via) >= 5 {
			return errors.New("too many redirects")
		}
		if !l.allowed(req.URL) {
			return fmt.Errorf("%w: %s", ErrHostNotAllowed, req.URL.Hostname())
		}
		return nil
	}
	return l
}

func (l *Loader) allowed(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && l.hosts[strings.ToLower(u.Hostname())]
}

// Load returns the decoded image for u.
func (l *Loader) Load(ctx context.Context, u string) (image.Image, error) {
	if img, ok := l.cached(u); ok {
		return img, nil
	}

	var data []byte
	var err error
	switch {
	case strings.HasPrefix(u, "data:"):
		data, err = DecodeDataURL(u)
	case strings.HasPrefix(u, "http://"), strings.HasPrefix(u, "https://"):
		data, err = l.fetch(ctx, u)
	default:
		err = fmt.Errorf("unsupported image source %q", truncate(u, 32))
	}
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	l.store(u, img)
	return img, nil
}

func (l *Loader) cached(u string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.cache[u]
	if !ok || time.Since(e.used) >= l.ttl {
		return nil, false
	}
	e.used = time.Now()
	l.cache[u] = e
	return e.img, true
}

// store adds img, dropping expired entries and then the least recently
// used ones until the cache fits.
func (l *Loader) store(u string, img image.Image) {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, e := range l.cache {
		if now.Sub(e.used) >= l.ttl {
			delete(l.cache, k)
		}
	}
	for len(l.cache) >= l.max {
		var oldest string
		var at time.Time
		for k, e := range l.cache {
			if oldest == "" || e.used.Before(at) {
				oldest, at = k, e.used
			}
		}
		delete(l.cache, oldest)
	}
	l.cache[u] = cachedImage{img: img, used: now}
}

// Len returns the number of cached images.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cache)
}

func (l *Loader) fetch(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	if !l.allowed(req.URL) {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, req.URL.Hostname())
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxRemoteImage))
}

// Preload loads every image the tree draws, at most four at a time, and
// fails with ErrAssetCapture if any cannot be loaded within settle.
func (l *Loader) Preload(ctx context.Context, urls []string, settle time.Duration) (map[string]image.Image, error) {
	ctx, cancel := context.WithTimeout(ctx, settle)
	defer cancel()

	out := make(map[string]image.Image, len(urls))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadParallel)
	for _, u := range urls {
		g.Go(func() error {
			img, err := l.Load(gctx, u)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrAssetCapture, truncate(u, 48), err)
			}
			mu.Lock()
			out[u] = img
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrAssetCapture) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAssetCapture, err)
	}
	return out, nil
}

// DecodeDataURL returns the payload of a data URL.
func DecodeDataURL(u string) ([]byte, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, errors.New("malformed data URL")
	}
	if strings.HasSuffix(meta, ";base64") {
		b, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URL: %w", err)
		}
		return b, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URL: %w", err)
	}
	return []byte(s), nil
}

// EncodeDataURL wraps data in a base64 data URL of the given MIME type.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
