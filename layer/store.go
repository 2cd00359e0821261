package layer

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/closset/meshpaint"
)

// Store is the ordered collection of layers for one document. All layers
// share the document raster resolution. The order slice is a permutation
// of all layer ids, bottom to top.
//
// The store exclusively owns layer buffers; the compositor and relief
// synthesizer only read them. Stores are not safe for concurrent use: all
// mutation happens on the render/input thread between frames.
type Store struct {
	width  int
	height int
	nextID int
	layers map[int]*Layer
	order  []int
	log    *slog.Logger
}

// NewStore creates an empty store at the given document resolution.
func NewStore(width, height int) *Store {
	return &Store{
		width:  width,
		height: height,
		nextID: 1,
		layers: make(map[int]*Layer),
		log:    meshpaint.Logger(),
	}
}

// Resolution returns the document raster resolution.
func (s *Store) Resolution() (width, height int) {
	return s.width, s.height
}

// Create adds a new layer of the given kind on top of the stack.
func (s *Store) Create(kind Kind, name string) *Layer {
	l := newLayer(s.nextID, kind, name, s.width, s.height)
	s.nextID++
	s.layers[l.ID] = l
	s.order = append(s.order, l.ID)
	s.log.Info("layer created", "id", l.ID, "kind", kind.String(), "name", name)
	return l
}

// Get returns a layer by id.
func (s *Store) Get(id int) (*Layer, bool) {
	l, ok := s.layers[id]
	return l, ok
}

// ActiveFor returns the topmost layer of the given kind, creating one with
// a default name if none exists. This is the lazy layer-creation path used
// when a tool first draws.
func (s *Store) ActiveFor(kind Kind) *Layer {
	for i := len(s.order) - 1; i >= 0; i-- {
		l := s.layers[s.order[i]]
		if l.Kind == kind {
			return l
		}
	}
	return s.Create(kind, kind.String())
}

// Layers returns all layers bottom to top.
func (s *Store) Layers() []*Layer {
	out := make([]*Layer, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.layers[id])
	}
	return out
}

// Order returns a copy of the z-order id list, bottom to top.
func (s *Store) Order() []int {
	return slices.Clone(s.order)
}

// Count returns the number of layers.
func (s *Store) Count() int {
	return len(s.layers)
}

// Reorder moves a layer to the given position in the z-order
// (0 = bottommost).
func (s *Store) Reorder(id, index int) error {
	pos := slices.Index(s.order, id)
	if pos < 0 {
		return fmt.Errorf("layer: reorder of unknown layer %d", id)
	}
	if index < 0 || index >= len(s.order) {
		return fmt.Errorf("layer: reorder index %d out of range", index)
	}
	s.order = slices.Delete(s.order, pos, pos+1)
	s.order = slices.Insert(s.order, index, id)
	return nil
}

// SetVisible controls layer visibility without removing content.
func (s *Store) SetVisible(id int, visible bool) {
	if l, ok := s.layers[id]; ok {
		l.Visible = visible
	}
}

// SetOpacity sets the layer opacity, clamped to [0, 1].
func (s *Store) SetOpacity(id int, opacity float64) {
	if l, ok := s.layers[id]; ok {
		if opacity < 0 {
			opacity = 0
		}
		if opacity > 1 {
			opacity = 1
		}
		l.Opacity = opacity
	}
}

// SetBlendMode sets the layer blend mode.
func (s *Store) SetBlendMode(id int, mode BlendMode) {
	if l, ok := s.layers[id]; ok {
		l.Blend = mode
	}
}

// Delete removes a layer. An in-progress stroke targeting the layer is
// dropped silently: the stroke engine re-checks layer existence on every
// mark and aborts when the lookup fails.
func (s *Store) Delete(id int) {
	if _, ok := s.layers[id]; !ok {
		return
	}
	delete(s.layers, id)
	if pos := slices.Index(s.order, id); pos >= 0 {
		s.order = slices.Delete(s.order, pos, pos+1)
	}
	s.log.Info("layer deleted", "id", id)
}
