package dom

import "encoding/json"

// NodeID identifies one record in a raw snapshot table. IDs are assigned by
// the page script and mean nothing outside their snapshot.
type NodeID string

const rawTextNodeType = "TEXT_NODE"

// RawSnapshot is the wire form produced by the in-page snapshot script: a
// flat table of records plus the id of the root element.
type RawSnapshot struct {
	RootID NodeID             `json:"rootId"`
	Map    map[NodeID]RawNode `json:"map"`
}

// RawNode is one record of the raw table. Text records carry Type
// "TEXT_NODE" plus Text; element records carry everything else.
type RawNode struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`

	TagName    string     `json:"tagName,omitempty"`
	XPath      string     `json:"xpath,omitempty"`
	Attributes Attributes `json:"attributes,omitempty"`
	Children   []NodeID   `json:"children,omitempty"`

	IsVisible     bool `json:"isVisible,omitempty"`
	IsInteractive bool `json:"isInteractive,omitempty"`
	IsTopElement  bool `json:"isTopElement,omitempty"`
	IsInViewport  bool `json:"isInViewport,omitempty"`
	ShadowRoot    bool `json:"shadowRoot,omitempty"`

	HighlightIndex *int `json:"highlightIndex,omitempty"`

	ViewportCoordinates *CoordinateSet `json:"viewportCoordinates,omitempty"`
	PageCoordinates     *CoordinateSet `json:"pageCoordinates,omitempty"`
	Viewport            *ViewportInfo  `json:"viewport,omitempty"`
}

// IsText reports whether the record is a text record.
func (n RawNode) IsText() bool { return n.Type == rawTextNodeType }

// DecodeSnapshot parses the JSON emitted by the snapshot script.
func DecodeSnapshot(data []byte) (*RawSnapshot, error) {
	var snap RawSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// CaptureOptions are passed through to the snapshot script.
type CaptureOptions struct {
	HighlightElements   bool `json:"highlightElements"`
	FocusHighlightIndex int  `json:"focusHighlightIndex"`
	ViewportExpansion   int  `json:"viewportExpansion"`
	DebugMode           bool `json:"debugMode"`
}

// DefaultCaptureOptions highlights every interactive element, focuses none,
// and treats only the literal viewport as in-viewport.
func DefaultCaptureOptions() CaptureOptions {
	return CaptureOptions{
		HighlightElements:   true,
		FocusHighlightIndex: -1,
		ViewportExpansion:   0,
		DebugMode:           false,
	}
}
