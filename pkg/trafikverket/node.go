package trafikverket

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

// NodeHelper extracts typed values from one parsed XML element using
// relative paths like "Observation/Air/Temperature/Value".
//
// All scalar getters share a cardinality contract: zero matches yields nil,
// exactly one yields the value, two or more fails with ErrMultipleNodes.
// The upstream protocol encodes "field missing" as zero matches and
// guarantees requested scalar fields appear at most once; the check turns
// a schema mismatch into a loud failure instead of silently picking the
// first node.
type NodeHelper struct {
	node *etree.Element
}

// NewNodeHelper wraps an element for extraction.
func NewNodeHelper(node *etree.Element) *NodeHelper {
	return &NodeHelper{node: node}
}

func (h *NodeHelper) single(path string) (*etree.Element, error) {
	nodes := h.node.FindElements(path)
	if len(nodes) == 0 {
		return nil, nil
	}
	if len(nodes) > 1 {
		return nil, fmt.Errorf("%s: %w", path, ErrMultipleNodes)
	}
	return nodes[0], nil
}

// Text returns the text at path, or nil when the path has no match.
func (h *NodeHelper) Text(path string) (*string, error) {
	node, err := h.single(path)
	if node == nil || err != nil {
		return nil, err
	}
	text := node.Text()
	return &text, nil
}

// Number returns the float at path. A value that doesn't parse as a number
// yields nil, not an error.
func (h *NodeHelper) Number(path string) (*float64, error) {
	node, err := h.single(path)
	if node == nil || err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(node.Text(), 64)
	if err != nil {
		return nil, nil
	}
	return &value, nil
}

// Bool returns true iff the text at path, lowercased, equals "true".
// No match yields nil.
func (h *NodeHelper) Bool(path string) (*bool, error) {
	node, err := h.single(path)
	if node == nil || err != nil {
		return nil, err
	}
	value := strings.ToLower(node.Text()) == "true"
	return &value, nil
}

// Texts returns the text of every match at path in document order. Zero
// matches yields an empty slice.
func (h *NodeHelper) Texts(path string) []string {
	nodes := h.node.FindElements(path)
	result := make([]string, 0, len(nodes))
	for _, node := range nodes {
		result = append(result, node.Text())
	}
	return result
}

// DateTime parses the text at path using the general wire layout
// (fractional seconds plus numeric UTC offset).
func (h *NodeHelper) DateTime(path string) (*time.Time, error) {
	node, err := h.single(path)
	if node == nil || err != nil {
		return nil, err
	}
	value, err := time.Parse(layoutDateTime, node.Text())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &value, nil
}

// DateTimeModified parses the text at path using the ModifiedTime layout
// (fractional seconds, literal trailing Z, always UTC). This is a distinct
// wire format from the general timestamps.
func (h *NodeHelper) DateTimeModified(path string) (*time.Time, error) {
	node, err := h.single(path)
	if node == nil || err != nil {
		return nil, err
	}
	value, err := time.Parse(layoutDateTimeModified, node.Text())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &value, nil
}
