package sparse

import "container/list"

// Layer is an ordered set of flat offsets sharing one status. Order is
// insertion order and decides processing order in the updaters.
// Layers are working queues: pushing or popping never touches the backing
// image, use Field for that.
type Layer struct {
	status int8
	nodes  *list.List
	pos    map[int]*list.Element
}

func newLayer(status int8) *Layer {
	return &Layer{status: status, nodes: list.New(), pos: make(map[int]*list.Element)}
}

// Status returns the layer's status.
func (l *Layer) Status() int8 { return l.status }

// Len returns the number of nodes in the layer.
func (l *Layer) Len() int { return l.nodes.Len() }

// Contains reports whether i is in the layer.
func (l *Layer) Contains(i int) bool {
	_, ok := l.pos[i]
	return ok
}

// PushBack appends i, or moves it to the back if already present.
func (l *Layer) PushBack(i int) {
	if e, ok := l.pos[i]; ok {
		l.nodes.MoveToBack(e)
		return
	}
	l.pos[i] = l.nodes.PushBack(i)
}

// PushFront prepends i, or moves it to the front if already present.
func (l *Layer) PushFront(i int) {
	if e, ok := l.pos[i]; ok {
		l.nodes.MoveToFront(e)
		return
	}
	l.pos[i] = l.nodes.PushFront(i)
}

// PopFront removes and returns the first node.
func (l *Layer) PopFront() (int, bool) {
	return l.pop(l.nodes.Front())
}

// PopBack removes and returns the last node.
func (l *Layer) PopBack() (int, bool) {
	return l.pop(l.nodes.Back())
}

// Remove deletes i and reports whether it was present.
func (l *Layer) Remove(i int) bool {
	e, ok := l.pos[i]
	if ok {
		l.pop(e)
	}

	return ok
}

// Indices returns a snapshot of the layer in order.
func (l *Layer) Indices() []int {
	out := make([]int, 0, l.nodes.Len())
	for e := l.nodes.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(int))
	}

	return out
}

func (l *Layer) pop(e *list.Element) (int, bool) {
	if e == nil {
		return 0, false
	}
	i := l.nodes.Remove(e).(int)
	delete(l.pos, i)

	return i, true
}
