package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/url"
	"strings"
	"sync"
	"time"

	"pagepilot/internal/application/port/output"
	"pagepilot/internal/domain/dom"
	"pagepilot/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.BrowserPort = (*BrowserAdapter)(nil)

const (
	defaultTimeout     = 10 * time.Second
	defaultSlowMotion  = 0 * time.Millisecond
	screenshotMaxWidth = 1024
)

var (
	ErrBrowserNotConnected    = errors.New("browser not connected")
	ErrInvalidURL             = errors.New("invalid url")
	ErrNoCapture              = errors.New("no page state captured yet")
	ErrElementNotFound        = errors.New("element not found")
	ErrInvalidScrollDirection = errors.New("unknown scroll direction")
)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	logger   output.LoggerPort

	mu     sync.Mutex
	state  *entity.BrowserState
	closed bool
}

type Config struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
}

func DefaultConfig() Config {
	return Config{
		Headless:   true,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  false,
		DevTools:   false,
	}
}

func NewBrowserAdapter(ctx context.Context, cfg Config, log output.LoggerPort) (*BrowserAdapter, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(controlURL).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
		logger:   log,
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.browser != nil
}

func (b *BrowserAdapter) Navigate(ctx context.Context, rawURL string) error {
	if !b.IsReady() {
		return ErrBrowserNotConnected
	}
	if err := validateURL(rawURL); err != nil {
		return err
	}

	if err := b.page.Navigate(rawURL); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := b.page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	b.page.WaitIdle(5 * time.Second)

	// The old capture describes a page that no longer exists.
	b.mu.Lock()
	b.state = nil
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Info("Navigated", "url", b.CurrentURL())
	}
	return nil
}

// CaptureState runs the in-page snapshot script, builds the typed tree and
// selector map, and replaces the adapter's current state.
func (b *BrowserAdapter) CaptureState(ctx context.Context, opts dom.CaptureOptions) (*entity.BrowserState, error) {
	if !b.IsReady() {
		return nil, ErrBrowserNotConnected
	}

	res, err := b.page.Timeout(b.timeout).Eval(snapshotScript, opts)
	if err != nil {
		return nil, fmt.Errorf("snapshot script failed: %w", err)
	}

	snap, err := dom.DecodeSnapshot([]byte(res.Value.Str()))
	if err != nil {
		return nil, fmt.Errorf("snapshot decode failed: %w", err)
	}

	root, selectorMap, err := dom.ConstructTree(snap)
	if err != nil {
		return nil, err
	}

	state := &entity.BrowserState{
		Root:        root,
		SelectorMap: selectorMap,
	}
	if info, err := b.page.Info(); err == nil {
		state.URL = info.URL
		state.Title = info.Title
	}

	b.mu.Lock()
	b.state = state
	b.mu.Unlock()

	if b.logger != nil {
		b.logger.Debug("Captured page state",
			"url", state.URL, "interactive", len(selectorMap))
	}
	return state, nil
}

func (b *BrowserAdapter) State() *entity.BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BrowserAdapter) ClickElement(ctx context.Context, index int) error {
	el, err := b.resolveElement(index)
	if err != nil {
		return err
	}

	target, err := b.page.Timeout(b.timeout).ElementX(el.XPath)
	if err != nil {
		return fmt.Errorf("%w: index %d xpath %s: %v", ErrElementNotFound, index, el.XPath, err)
	}
	if err := target.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	b.page.WaitIdle(2 * time.Second)
	return nil
}

func (b *BrowserAdapter) FillElement(ctx context.Context, index int, text string) error {
	el, err := b.resolveElement(index)
	if err != nil {
		return err
	}

	target, err := b.page.Timeout(b.timeout).ElementX(el.XPath)
	if err != nil {
		return fmt.Errorf("%w: index %d xpath %s: %v", ErrElementNotFound, index, el.XPath, err)
	}

	if err := target.SelectAllText(); err == nil {
		_ = target.Input("")
	}
	if err := target.Input(text); err != nil {
		return fmt.Errorf("input failed: %w", err)
	}
	return nil
}

func (b *BrowserAdapter) resolveElement(index int) (*dom.ElementNode, error) {
	if !b.IsReady() {
		return nil, ErrBrowserNotConnected
	}
	state := b.State()
	if state == nil {
		return nil, ErrNoCapture
	}
	el, ok := state.ElementByIndex(index)
	if !ok {
		return nil, fmt.Errorf("%w: no element with index %d in current capture", ErrElementNotFound, index)
	}
	return el, nil
}

func (b *BrowserAdapter) PressEnter(ctx context.Context) error {
	if !b.IsReady() {
		return ErrBrowserNotConnected
	}
	el, err := b.page.Timeout(b.timeout).Element("body")
	if err != nil {
		return fmt.Errorf("body not found: %w", err)
	}
	if err := el.Input("\r"); err != nil {
		return fmt.Errorf("failed to press Enter: %w", err)
	}
	b.page.WaitIdle(1 * time.Second)
	return nil
}

func (b *BrowserAdapter) Scroll(ctx context.Context, direction string) error {
	if !b.IsReady() {
		return ErrBrowserNotConnected
	}

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "down":
		b.page.Eval(`() => window.scrollBy(0, window.innerHeight * 2)`)
	case "up":
		b.page.Eval(`() => window.scrollBy(0, -window.innerHeight * 2)`)
	case "top":
		b.page.Eval(`() => window.scrollTo(0, 0)`)
	case "bottom":
		b.page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScrollDirection, direction)
	}

	b.page.WaitIdle(800 * time.Millisecond)
	return nil
}

func (b *BrowserAdapter) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	if !b.IsReady() {
		return nil, ErrBrowserNotConnected
	}

	imgBytes, err := b.page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > screenshotMaxWidth {
		img = imaging.Resize(img, screenshotMaxWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (b *BrowserAdapter) PageText(ctx context.Context) (string, error) {
	if !b.IsReady() {
		return "", ErrBrowserNotConnected
	}
	html, err := b.page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to get HTML: %w", err)
	}
	return PageText(html), nil
}

func (b *BrowserAdapter) CurrentURL() string {
	if !b.IsReady() {
		return ""
	}
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "http", "https", "about":
		return nil
	default:
		return fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
}
