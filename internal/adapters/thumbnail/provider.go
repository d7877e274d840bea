// Package thumbnail implements ports.ThumbnailProvider: background preview
// generation with a bounded worker pool and an LRU cache.
package thumbnail

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"sync"

	_ "image/gif"
	_ "image/jpeg"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"

	"desksweep/internal/debug"
	"desksweep/internal/domain"
)

// Provider generates thumbnails for image files. Requests are idempotent:
// a file already cached or in flight is not queued again. Results for files
// nobody asks about again simply age out of the cache.
type Provider struct {
	cache     *lru.Cache[domain.FileID, domain.Thumbnail]
	maxPixels int

	pendingMu sync.Mutex
	pending   map[domain.FileID]bool

	requests chan domain.FileRecord
	done     chan struct{}
	closeOne sync.Once
	wg       sync.WaitGroup
}

// NewProvider starts workers goroutines (the concurrency bound; order 2)
// serving a cache of cacheSize entries scaled to maxPixels
func NewProvider(workers, cacheSize, maxPixels int) (*Provider, error) {
	if workers <= 0 {
		workers = 2
	}
	cache, err := lru.New[domain.FileID, domain.Thumbnail](cacheSize)
	if err != nil {
		return nil, err
	}
	p := &Provider{
		cache:     cache,
		maxPixels: maxPixels,
		pending:   make(map[domain.FileID]bool),
		requests:  make(chan domain.FileRecord, 64),
		done:      make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p, nil
}

// Request queues a file for background thumbnail generation. Non-image
// types and redundant requests are ignored.
func (p *Provider) Request(rec domain.FileRecord) {
	if rec.Type != domain.FileTypeImage {
		return
	}
	if _, ok := p.cache.Get(rec.ID); ok {
		return
	}
	p.pendingMu.Lock()
	if p.pending[rec.ID] {
		p.pendingMu.Unlock()
		return
	}
	p.pending[rec.ID] = true
	p.pendingMu.Unlock()

	select {
	case p.requests <- rec:
	default:
		// Queue full; drop the request rather than block the caller.
		p.pendingMu.Lock()
		delete(p.pending, rec.ID)
		p.pendingMu.Unlock()
	}
}

// Get returns the generated thumbnail for a file, if any
func (p *Provider) Get(id domain.FileID) (domain.Thumbnail, bool) {
	return p.cache.Get(id)
}

// Close stops the workers
func (p *Provider) Close() error {
	p.closeOne.Do(func() { close(p.done) })
	p.wg.Wait()
	return nil
}

func (p *Provider) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case rec := <-p.requests:
			p.generate(rec)
		}
	}
}

func (p *Provider) generate(rec domain.FileRecord) {
	defer func() {
		p.pendingMu.Lock()
		delete(p.pending, rec.ID)
		p.pendingMu.Unlock()
	}()

	f, err := os.Open(rec.Path)
	if err != nil {
		debug.Log(debug.THUMB, "open %s: %v", rec.Path, err)
		return
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		debug.Log(debug.THUMB, "decode %s: %v", rec.Path, err)
		return
	}

	thumb := scale(img, p.maxPixels)
	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		debug.Log(debug.THUMB, "encode %s: %v", rec.Path, err)
		return
	}
	bounds := thumb.Bounds()
	p.cache.Add(rec.ID, domain.Thumbnail{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Data:   buf.Bytes(),
	})
	debug.Log(debug.THUMB, "generated %dx%d for %s", bounds.Dx(), bounds.Dy(), rec.Name)
}

// scale downsamples so the longer edge fits maxPixels, preserving aspect
func scale(img image.Image, maxPixels int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxPixels && h <= maxPixels {
		return img
	}
	if w > h {
		h = h * maxPixels / w
		w = maxPixels
	} else {
		w = w * maxPixels / h
		h = maxPixels
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
