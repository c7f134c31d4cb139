// Package history re-identifies interactive elements across independently
// captured trees. A live tree is discarded after every step; what survives
// is a detached DOMHistoryElement plus the three-part structural fingerprint
// both sides hash to.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"pagepilot/internal/domain/dom"
)

// HashedDOMElement is an element's structural fingerprint. Two elements are
// the same iff all three components are equal; there is no fuzzy matching.
type HashedDOMElement struct {
	BranchPathHash string `json:"branchPathHash"`
	AttributesHash string `json:"attributesHash"`
	XPathHash      string `json:"xpathHash"`
}

// Equal reports full composite equality.
func (h HashedDOMElement) Equal(other HashedDOMElement) bool {
	return h.BranchPathHash == other.BranchPathHash &&
		h.AttributesHash == other.AttributesHash &&
		h.XPathHash == other.XPathHash
}

// Composite joins the three digests into the set-member form used by
// clickable hash sets.
func (h HashedDOMElement) Composite() string {
	return fmt.Sprintf("%s-%s-%s", h.BranchPathHash, h.AttributesHash, h.XPathHash)
}

// HashElement fingerprints a live element. Missing xpath or attributes hash
// as empty input, so the function is total and never fails.
func HashElement(el *dom.ElementNode) HashedDOMElement {
	return HashedDOMElement{
		BranchPathHash: hashBranchPath(el.ParentBranchPath()),
		AttributesHash: hashAttributes(el.Attributes),
		XPathHash:      hashString(el.XPath),
	}
}

// hashBranchPath hashes the root-to-element tag sequence joined with "/".
func hashBranchPath(path []string) string {
	return hashString(strings.Join(path, "/"))
}

// hashAttributes hashes the concatenation of key=value pairs in iteration
// order, no separator between pairs. The order dependence is inherited
// behavior: a browser that re-serializes attributes in a different order
// produces a different fingerprint. Kept as-is and pinned by tests; a sorted
// variant would change every observable hash value.
func hashAttributes(attrs dom.Attributes) string {
	var sb strings.Builder
	for _, kv := range attrs {
		sb.WriteString(kv.Key)
		sb.WriteByte('=')
		sb.WriteString(kv.Value)
	}
	return hashString(sb.String())
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
