package entity

import (
	"time"

	"pagepilot/internal/domain/dom"
	"pagepilot/internal/domain/dom/history"
)

// BrowserState is one step's view of the page: the captured tree, its
// selector map, and page metadata. A fresh state replaces the previous one
// entirely; selector maps are never carried across captures.
type BrowserState struct {
	URL         string
	Title       string
	Root        *dom.ElementNode
	SelectorMap dom.SelectorMap

	// ClickableHashes is the composite fingerprint set of this capture,
	// kept so the next capture can be diffed against it.
	ClickableHashes map[string]struct{}
}

// ElementByIndex resolves a highlight index against this capture.
func (s *BrowserState) ElementByIndex(index int) (*dom.ElementNode, bool) {
	if s == nil || s.SelectorMap == nil {
		return nil, false
	}
	el, ok := s.SelectorMap[index]
	return el, ok
}

type Screenshot struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// AgentStep records one executed action together with the history snapshot
// of the element it acted on, so the element can be re-identified after the
// live tree is gone.
type AgentStep struct {
	Step      int                        `json:"step"`
	Tool      string                     `json:"tool"`
	Arguments string                     `json:"arguments"`
	Element   *history.DOMHistoryElement `json:"element,omitempty"`
	Result    string                     `json:"result,omitempty"`
	Error     string                     `json:"error,omitempty"`
	PageURL   string                     `json:"page_url,omitempty"`
	Timestamp time.Time                  `json:"timestamp"`
}
