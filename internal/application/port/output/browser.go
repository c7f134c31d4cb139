package output

import (
	"context"

	"pagepilot/internal/domain/dom"
	"pagepilot/internal/domain/entity"
)

type BrowserPort interface {
	Navigate(ctx context.Context, url string) error

	// CaptureState snapshots the page, builds the typed tree and selector
	// map, and makes the result the adapter's current state.
	CaptureState(ctx context.Context, opts dom.CaptureOptions) (*entity.BrowserState, error)

	// State returns the most recent capture, or nil before the first one.
	State() *entity.BrowserState

	ClickElement(ctx context.Context, index int) error
	FillElement(ctx context.Context, index int, text string) error
	PressEnter(ctx context.Context) error
	Scroll(ctx context.Context, direction string) error

	Screenshot(ctx context.Context) (*entity.Screenshot, error)
	PageText(ctx context.Context) (string, error)

	CurrentURL() string
	Close()
}
