package fetch

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Fetcher downloads manifest sources with a shared rate limiter.
type Fetcher struct {
	client     *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxRetries int
}

// New builds a Fetcher from manifest settings, applying defaults for
// anything unset.
func New(m *Manifest) *Fetcher {
	perSec := m.RatePerSec
	if perSec <= 0 {
		perSec = 2
	}
	burst := m.Burst
	if burst <= 0 {
		burst = 1
	}
	retries := m.MaxRetries
	if retries <= 0 {
		retries = 3
	}
	ua := m.UserAgent
	if ua == "" {
		ua = "ntl-cli/1.0"
	}
	return &Fetcher{
		client:     &http.Client{Timeout: 5 * time.Minute},
		limiter:    rate.NewLimiter(rate.Limit(perSec), burst),
		userAgent:  ua,
		maxRetries: retries,
	}
}

// FetchAll mirrors every manifest source into destDir. Files that already
// exist are skipped. Downloads run concurrently up to the given limit.
func (f *Fetcher) FetchAll(ctx context.Context, m *Manifest, destDir string, concurrency int) error {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return eris.Wrapf(err, "fetch: create %s", destDir)
	}
	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for _, src := range m.Sources {
		g.Go(func() error {
			dest := filepath.Join(destDir, src.File)
			if _, err := os.Stat(dest); err == nil {
				zap.L().Debug("fetch: already present, skipping", zap.String("file", src.File))
				return nil
			}
			return f.fetchOne(gctx, src, dest)
		})
	}
	return g.Wait()
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source, dest string) error {
	log := zap.L().With(zap.String("url", src.URL), zap.String("file", filepath.Base(dest)))

	var lastErr error
	for attempt := range f.maxRetries {
		if err := f.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "fetch: rate limiter wait")
		}
		err := f.download(ctx, src.URL, dest)
		if err == nil {
			log.Info("fetched raster")
			return nil
		}
		lastErr = err
		log.Warn("download failed, retrying", zap.Int("attempt", attempt+1), zap.Error(err))
		backoff(ctx, attempt)
	}
	return eris.Wrapf(lastErr, "fetch: %s", src.URL)
}

func (f *Fetcher) download(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("http %d", resp.StatusCode)
	}

	tmp := dest + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return eris.Wrapf(err, "create %s", tmp)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return eris.Wrap(err, "write body")
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return eris.Wrap(err, "close")
	}
	return eris.Wrap(os.Rename(tmp, dest), "rename")
}

func backoff(ctx context.Context, attempt int) {
	base := time.Second
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	d += time.Duration(rand.Int64N(int64(d) / 2))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
