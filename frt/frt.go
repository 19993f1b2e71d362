// Package frt reads and writes route sets (.frt files).
//
// The layout is purely positional:
//
//	[routeCount i32]
//	  [routeID u32][nodeCount i32]
//	    [position 3×f32][default event][eventCount i32][event...]
//
// with every event encoded as [id u32][10 × u32 params][snippet, 4 bytes].
// Snippets are stored in the engine's 8-bit code page and zero-padded.
package frt

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	codec "github.com/oy3o/foxcodec"
)

var _ codec.Codec = (*RouteSet)(nil)

// DefaultEncoding is the code page snippets are stored in unless Options says otherwise.
var DefaultEncoding encoding.Encoding = charmap.Windows1252

// Options tunes encoding and decoding. A nil *Options selects the defaults.
type Options struct {
	Limits   codec.Limits
	Encoding encoding.Encoding
}

func (o *Options) limits() codec.Limits {
	if o == nil {
		return codec.DefaultLimits
	}
	return o.Limits
}

func (o *Options) encoding() encoding.Encoding {
	if o == nil || o.Encoding == nil {
		return DefaultEncoding
	}
	return o.Encoding
}

// routeCodec binds the element sequences of one Read or Write call to its options.
type routeCodec struct {
	enc    encoding.Encoding
	limits codec.Limits

	routes *codec.Sequence[Route]
	nodes  *codec.Sequence[RouteNode]
	events *codec.Sequence[RouteEvent]
}

func newRouteCodec(opts *Options) *routeCodec {
	c := &routeCodec{enc: opts.encoding(), limits: opts.limits()}
	c.routes = &codec.Sequence[Route]{
		Name:    "route",
		MinSize: RouteMinSize,
		Size:    routeSize,
		Decode:  c.decodeRoute,
		Encode:  c.encodeRoute,
	}
	c.nodes = &codec.Sequence[RouteNode]{
		Name:    "node",
		MinSize: NodeMinSize,
		Size:    nodeSize,
		Decode:  c.decodeNode,
		Encode:  c.encodeNode,
	}
	c.events = &codec.Sequence[RouteEvent]{
		Name:    "event",
		MinSize: EventSize,
		Size:    eventSize,
		Decode:  c.decodeEvent,
		Encode:  c.encodeEvent,
	}
	return c
}

// Read decodes a route set from r. Nothing is returned unless the whole set
// decoded: a short stream is codec.ErrTruncatedInput and an implausible count,
// including a route without nodes, is codec.ErrCorruptCount.
func Read(r codec.PrimitiveReader, opts *Options) (*RouteSet, error) {
	routes, err := newRouteCodec(opts).routes.Read(r, opts.limits())
	if err != nil {
		return nil, fmt.Errorf("frt: %w", err)
	}
	return &RouteSet{Routes: routes}, nil
}

// Write validates rs and encodes it to w. Invalid sets are rejected before
// any byte is written.
func Write(w codec.PrimitiveWriter, rs *RouteSet, opts *Options) error {
	if err := Validate(rs, opts); err != nil {
		return fmt.Errorf("frt: %w", err)
	}
	if err := newRouteCodec(opts).routes.Write(w, rs.Routes); err != nil {
		return fmt.Errorf("frt: %w", err)
	}
	return nil
}

func (c *routeCodec) decodeRoute(r codec.PrimitiveReader) (Route, error) {
	var route Route
	r.ReadUint32(&route.ID)
	count, err := codec.ReadCount(r)
	if err != nil {
		return Route{}, fmt.Errorf("id %d: node count: %w", route.ID, err)
	}
	if count == 0 {
		return Route{}, fmt.Errorf("%w: id %d: %w", codec.ErrCorruptCount, route.ID, ErrEmptyRoute)
	}

	nodes, err := c.nodes.ReadN(r, count, c.limits)
	if err != nil {
		return Route{}, fmt.Errorf("id %d: %w", route.ID, err)
	}
	route.Nodes = nodes
	return route, nil
}

func (c *routeCodec) encodeRoute(w codec.PrimitiveWriter, route Route) error {
	if len(route.Nodes) == 0 {
		return fmt.Errorf("id %d: %w", route.ID, ErrEmptyRoute)
	}
	w.WriteUint32(route.ID)
	return c.nodes.Write(w, route.Nodes)
}

func (c *routeCodec) decodeNode(r codec.PrimitiveReader) (RouteNode, error) {
	var (
		node RouteNode
		err  error
	)
	node.Position.Decode(r)
	if node.Default, err = c.decodeEvent(r); err != nil {
		return RouteNode{}, fmt.Errorf("default event: %w", err)
	}
	if node.Events, err = c.events.Read(r, c.limits); err != nil {
		return RouteNode{}, err
	}
	return node, nil
}

func (c *routeCodec) encodeNode(w codec.PrimitiveWriter, node RouteNode) error {
	node.Position.Encode(w)
	if err := c.encodeEvent(w, node.Default); err != nil {
		return fmt.Errorf("default event: %w", err)
	}
	return c.events.Write(w, node.Events)
}

func (c *routeCodec) decodeEvent(r codec.PrimitiveReader) (RouteEvent, error) {
	var event RouteEvent
	r.ReadUint32(&event.ID)
	for i := range event.Params {
		r.ReadUint32(&event.Params[i])
	}
	raw := r.ReadBytes(SnippetSize)
	if err := r.Err(); err != nil {
		return RouteEvent{}, err
	}

	snippet, err := decodeSnippet(c.enc, raw)
	if err != nil {
		return RouteEvent{}, err
	}
	event.Snippet = snippet
	return event, nil
}

func (c *routeCodec) encodeEvent(w codec.PrimitiveWriter, event RouteEvent) error {
	snippet, err := encodeSnippet(c.enc, event.Snippet)
	if err != nil {
		return err
	}
	w.WriteUint32(event.ID)
	for _, p := range event.Params {
		w.WriteUint32(p)
	}
	w.WriteBytes(snippet[:])
	return w.Err()
}

// Size returns the encoded size of the set in bytes.
func (rs *RouteSet) Size() int {
	size := 4
	for _, route := range rs.Routes {
		size += routeSize(route)
	}
	return size
}

// WriteTo implements io.WriterTo using the default options.
func (rs *RouteSet) WriteTo(writer io.Writer) (int64, error) {
	w, err := codec.NewWriter(writer)
	if err != nil {
		return 0, err
	}
	if err := Write(w, rs, nil); err != nil {
		return w.Count(), err
	}
	return w.Result()
}

// ReadFrom implements io.ReaderFrom using the default options. rs is replaced
// only if the whole set decodes.
func (rs *RouteSet) ReadFrom(reader io.Reader) (int64, error) {
	r, err := codec.NewReader(reader)
	if err != nil {
		return 0, err
	}
	set, err := Read(r, nil)
	if err != nil {
		return r.Count(), err
	}
	*rs = *set
	return r.Count(), nil
}

func (rs *RouteSet) MarshalBinary() ([]byte, error) {
	return codec.MarshalBinary(rs)
}

func (rs *RouteSet) UnmarshalBinary(data []byte) error {
	return codec.UnmarshalBinary(rs, data)
}

func (rs *RouteSet) MarshalTo(buf []byte) (int, error) {
	return codec.MarshalTo(rs, buf)
}

// ReadFile decodes the route set stored at path.
func ReadFile(path string, opts *Options) (*RouteSet, error) {
	var rs *RouteSet
	err := codec.ReadFile(path, func(r *codec.Reader) (err error) {
		rs, err = Read(r, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// WriteFile encodes rs to path, replacing any existing file. An invalid set
// leaves the file untouched.
func WriteFile(path string, rs *RouteSet, opts *Options) error {
	if err := Validate(rs, opts); err != nil {
		return fmt.Errorf("frt: %w", err)
	}
	return codec.WriteFile(path, func(w *codec.Writer) error {
		return Write(w, rs, opts)
	})
}
