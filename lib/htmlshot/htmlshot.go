// Package htmlshot renders html documents (or urls) to images with a
// headless Chrome instance driven over the devtools protocol.
package htmlshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type Options struct {
	// Selector of the element to screenshot. When empty the whole
	// viewport is captured.
	Selector string
	// Viewport size. Defaults to 750x1080, the width the result
	// template is laid out for.
	Width  int
	Height int
	// Timeout bounds a single render. Defaults to 30s, cold Chrome
	// starts are slow.
	Timeout time.Duration
	// UserAgent reported by the browser. Optional.
	UserAgent string
}

func (o Options) withDefaults() Options {
	if o.Width == 0 {
		o.Width = 750
	}
	if o.Height == 0 {
		o.Height = 1080
	}
	if o.Timeout == 0 {
		o.Timeout = time.Second * 30
	}
	return o
}

// Browser owns one headless Chrome process, lazily started on the
// first render. Renders are serialized, the devtools session is
// single user. Close must be called to release the process.
type Browser struct {
	opts     Options
	allocCtx context.Context
	cancel   context.CancelFunc

	mu sync.Mutex
}

func New(opts Options) *Browser {
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(opts.Width, opts.Height),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)

	return &Browser{
		opts:     opts,
		allocCtx: allocCtx,
		cancel:   cancel,
	}
}

// Render loads the given html document (or url, when the input starts
// with http:// or https://) into a fresh tab and returns a png
// screenshot of the configured element.
func (b *Browser) Render(ctx context.Context, content string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tabCtx, cancelTab := chromedp.NewContext(b.allocCtx)
	defer cancelTab()

	// chromedp contexts descend from the allocator, not the caller,
	// so propagate the caller's cancellation by hand
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	timeoutCtx, cancelTimeout := context.WithTimeout(tabCtx, b.opts.Timeout)
	defer cancelTimeout()

	var actions []chromedp.Action
	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		actions = append(actions, chromedp.Navigate(content))
	} else {
		actions = append(actions,
			chromedp.Navigate("about:blank"),
			chromedp.ActionFunc(func(ctx context.Context) error {
				frameTree, err := page.GetFrameTree().Do(ctx)
				if err != nil {
					return err
				}
				return page.SetDocumentContent(frameTree.Frame.ID, content).Do(ctx)
			}),
		)
	}

	var image []byte
	if b.opts.Selector != "" {
		actions = append(actions,
			chromedp.WaitReady(b.opts.Selector, chromedp.ByQuery),
			chromedp.Screenshot(b.opts.Selector, &image, chromedp.NodeVisible, chromedp.ByQuery),
		)
	} else {
		actions = append(actions,
			chromedp.WaitReady("body", chromedp.ByQuery),
			chromedp.FullScreenshot(&image, 100),
		)
	}

	start := time.Now()
	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("browser automation failed: %w", err)
	}
	slog.DebugContext(
		ctx, "rendered screenshot",
		"bytes", len(image),
		"seconds", time.Since(start).Seconds(),
	)

	return image, nil
}

// Close releases the underlying browser process.
func (b *Browser) Close() error {
	b.cancel()
	return nil
}
