package scene

import "sync"

// Counts is a snapshot of live resources.
type Counts struct {
	Geometries int
	Materials  int
	Textures   int
}

func (c Counts) Total() int { return c.Geometries + c.Materials + c.Textures }

// Resources tracks the geometry, material and texture handles held by
// attached nodes. Every drawable node holds one geometry and one material;
// labels also hold a texture.
type Resources struct {
	mu   sync.Mutex
	live Counts
}

func NewResources() *Resources { return &Resources{} }

func cost(n *Node) Counts {
	if !n.Kind.Drawable() {
		return Counts{}
	}
	c := Counts{Geometries: 1, Materials: 1}
	if n.Kind == KindLabel {
		c.Textures = 1
	}
	return c
}

// Acquire allocates resources for every node in the subtree that does not
// currently hold them.
func (r *Resources) Acquire(root *Node) Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	var got Counts
	root.Walk(func(n *Node) {
		if n.acquired && !n.released {
			return
		}
		n.acquired, n.released = true, false
		c := cost(n)
		got.Geometries += c.Geometries
		got.Materials += c.Materials
		got.Textures += c.Textures
	})
	r.live.Geometries += got.Geometries
	r.live.Materials += got.Materials
	r.live.Textures += got.Textures
	return got
}

// Release gives back the resources of every node in the subtree. Each node
// is released at most once; releasing again is a no-op.
func (r *Resources) Release(root *Node) Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	var freed Counts
	root.Walk(func(n *Node) {
		if !n.acquired || n.released {
			return
		}
		n.released = true
		c := cost(n)
		freed.Geometries += c.Geometries
		freed.Materials += c.Materials
		freed.Textures += c.Textures
	})
	r.live.Geometries -= freed.Geometries
	r.live.Materials -= freed.Materials
	r.live.Textures -= freed.Textures
	return freed
}

func (r *Resources) Live() Counts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}
