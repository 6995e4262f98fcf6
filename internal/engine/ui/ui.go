package ui

import (
	"sync"

	"github.com/Faultbox/flyview/internal/engine/assets"
	"github.com/Faultbox/flyview/internal/engine/ecs"
)

// Rect is a resolved screen rectangle in logical pixels.
type Rect struct {
	X, Y, W, H float32
}

// Transform places an element on screen. Rect is filled in by the ui system;
// until then Resolved is false and the element is not drawn.
type Transform struct {
	ID       string
	Anchor   Anchor
	X, Y     float32
	Width    float32
	Height   float32
	Rect     Rect
	Resolved bool
}

// Resolve computes Rect for a screen and content size. Content size is only
// used where Width or Height is zero.
func (t *Transform) Resolve(screenW, screenH, contentW, contentH float32) {
	w, h := t.Width, t.Height
	if w == 0 {
		w = contentW
	}
	if h == 0 {
		h = contentH
	}
	fx, fy, _ := t.Anchor.Fraction()
	t.Rect = Rect{
		X: fx*screenW + t.X - fx*w,
		Y: fy*screenH + t.Y - fy*h,
		W: w,
		H: h,
	}
	t.Resolved = true
}

// EachResolved calls fn for every element whose Rect has been resolved.
func EachResolved(w *ecs.World, fn func(e ecs.Entity, t *Transform)) {
	ecs.StorageOf[Transform](w).Each(func(e ecs.Entity, t *Transform) {
		if t.Resolved {
			fn(e, t)
		}
	})
}

// Text is the text of an element, drawn centered in its Rect.
type Text struct {
	Text  string
	Scale float32
	Color [4]float32
}

// Background fills an element's Rect.
type Background struct {
	Color [4]float32
}

// queue holds layouts that are loading and not yet instantiated.
type queue struct {
	mu      sync.Mutex
	handles []*assets.Handle[*Layout]
}

func queueOf(w *ecs.World) *queue {
	q, ok := ecs.Resource[queue](w)
	if !ok {
		q = &queue{}
		ecs.SetResource(w, q)
	}
	return q
}

// Creator starts loading layout files and queues them for instantiation.
type Creator struct {
	world  *ecs.World
	loader *assets.Loader
}

// NewCreator returns a creator for w loading through l.
func NewCreator(w *ecs.World, l *assets.Loader) *Creator {
	return &Creator{world: w, loader: l}
}

// Create loads a layout in the background. Its elements appear once the file
// is decoded and the ui system (or a Finder lookup) runs. progress may be nil.
func (c *Creator) Create(path string, progress *assets.ProgressCounter) *assets.Handle[*Layout] {
	h := assets.Load(c.loader, path, ParseLayout, progress)
	q := queueOf(c.world)
	q.mu.Lock()
	q.handles = append(q.handles, h)
	q.mu.Unlock()
	return h
}

// Instantiate creates one entity per layout element and returns them.
func Instantiate(w *ecs.World, l *Layout) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(l.Elements))
	for _, el := range l.Elements {
		e := w.Create()
		ecs.Insert(w, e, &Transform{
			ID:     el.ID,
			Anchor: el.Anchor,
			X:      el.X,
			Y:      el.Y,
			Width:  el.Width,
			Height: el.Height,
		})
		ecs.Insert(w, e, &Text{Text: el.Text, Scale: el.Scale, Color: *el.Color})
		if el.Background != nil {
			ecs.Insert(w, e, &Background{Color: *el.Background})
		}
		out = append(out, e)
	}
	return out
}

// Apply instantiates every queued layout that finished loading. Failed
// layouts are dropped; the loader has already logged them.
func Apply(w *ecs.World) int {
	q := queueOf(w)
	q.mu.Lock()
	var ready []*Layout
	pending := q.handles[:0]
	for _, h := range q.handles {
		if !h.Ready() {
			pending = append(pending, h)
			continue
		}
		if l, ok := h.Get(); ok {
			ready = append(ready, l)
		}
	}
	q.handles = pending
	q.mu.Unlock()

	n := 0
	for _, l := range ready {
		n += len(Instantiate(w, l))
	}
	return n
}

// Finder looks up elements by id.
type Finder struct {
	world *ecs.World
}

// NewFinder returns a finder over w.
func NewFinder(w *ecs.World) Finder {
	return Finder{world: w}
}

// Find returns the entity of the element with the given id. Layouts that
// finished loading are instantiated first.
func (f Finder) Find(id string) (ecs.Entity, bool) {
	Apply(f.world)
	for _, e := range ecs.StorageOf[Transform](f.world).Entities() {
		t, _ := ecs.Get[Transform](f.world, e)
		if t.ID == id {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// Text returns the mutable text of the element with the given id.
func (f Finder) Text(id string) (*Text, bool) {
	e, ok := f.Find(id)
	if !ok {
		return nil, false
	}
	return ecs.Get[Text](f.world, e)
}
