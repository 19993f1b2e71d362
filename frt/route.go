package frt

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	codec "github.com/oy3o/foxcodec"
)

var (
	// ErrEmptyRoute is returned for a route without nodes.
	ErrEmptyRoute = errors.New("frt: route has no nodes")

	// ErrInvalidSnippet is returned for an event snippet that cannot be stored
	// in the fixed snippet buffer.
	ErrInvalidSnippet = errors.New("frt: invalid event snippet")
)

const (
	// ParamCount is the number of auxiliary parameters carried by every event.
	ParamCount = 10
	// SnippetSize is the width of the zero-padded snippet buffer.
	SnippetSize = 4

	// EventSize is the encoded size of one RouteEvent.
	EventSize = 4 + ParamCount*4 + SnippetSize
	// NodeMinSize is the encoded size of a RouteNode with an empty event list.
	NodeMinSize = 3*4 + EventSize + 4
	// RouteMinSize is the encoded size of a Route with a single, event-less node.
	RouteMinSize = 4 + 4 + NodeMinSize
)

// RouteEvent is an action triggered at a route node.
type RouteEvent struct {
	ID      uint32             `json:"id"`
	Params  [ParamCount]uint32 `json:"params"`
	Snippet string             `json:"snippet"`
}

// RouteNode is a waypoint. Default is stored independently of Events; the
// same event may appear in both.
type RouteNode struct {
	Position codec.Vector3 `json:"position"`
	Default  RouteEvent    `json:"default"`
	Events   []RouteEvent  `json:"events"`
}

// Route is a path through its nodes in slice order. It must have at least one node.
type Route struct {
	ID    uint32      `json:"id"`
	Nodes []RouteNode `json:"nodes"`
}

// RouteSet is an ordered collection of routes.
type RouteSet struct {
	Routes []Route `json:"routes"`
}

// Positions yields every node position, route by route, in traversal order.
func (rs *RouteSet) Positions() iter.Seq[codec.Vector3] {
	return func(yield func(codec.Vector3) bool) {
		for _, route := range rs.Routes {
			for _, node := range route.Nodes {
				if !yield(node.Position) {
					return
				}
			}
		}
	}
}

// Validate reports the first reason rs cannot be written with opts.
func Validate(rs *RouteSet, opts *Options) error {
	enc := opts.encoding()
	for i, route := range rs.Routes {
		if len(route.Nodes) == 0 {
			return fmt.Errorf("route %d (id %d): %w", i, route.ID, ErrEmptyRoute)
		}
		for j, node := range route.Nodes {
			if _, err := encodeSnippet(enc, node.Default.Snippet); err != nil {
				return fmt.Errorf("route %d node %d default event: %w", i, j, err)
			}
			for k, event := range node.Events {
				if _, err := encodeSnippet(enc, event.Snippet); err != nil {
					return fmt.Errorf("route %d node %d event %d: %w", i, j, k, err)
				}
			}
		}
	}
	return nil
}

func encodeSnippet(enc encoding.Encoding, s string) ([SnippetSize]byte, error) {
	var buf [SnippetSize]byte
	b, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return buf, fmt.Errorf("%w: %q: %w", ErrInvalidSnippet, s, err)
	}
	if len(b) > SnippetSize {
		return buf, fmt.Errorf("%w: %q encodes to %d bytes, limit is %d", ErrInvalidSnippet, s, len(b), SnippetSize)
	}
	// Trailing NULs are indistinguishable from padding.
	if len(b) > 0 && b[len(b)-1] == 0 {
		return buf, fmt.Errorf("%w: %q ends with NUL", ErrInvalidSnippet, s)
	}
	copy(buf[:], b)
	return buf, nil
}

func decodeSnippet(enc encoding.Encoding, raw []byte) (string, error) {
	raw = bytes.TrimRight(raw, "\x00")
	if len(raw) == 0 {
		return "", nil
	}
	s, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: % x: %w", ErrInvalidSnippet, raw, err)
	}
	if bytes.ContainsRune(s, utf8.RuneError) {
		return "", fmt.Errorf("%w: % x is not valid in the snippet encoding", ErrInvalidSnippet, raw)
	}
	return string(s), nil
}

func eventSize(RouteEvent) int { return EventSize }

func nodeSize(n RouteNode) int { return NodeMinSize + len(n.Events)*EventSize }

func routeSize(r Route) int {
	size := 8
	for _, n := range r.Nodes {
		size += nodeSize(n)
	}
	return size
}
