package grid

import (
	"slices"
)

// MoveResult reports what [MoveElement] did.
type MoveResult int

const (
	// Moved means the item was placed at the target (possibly clamped) and
	// colliding items were displaced.
	Moved MoveResult = iota
	// Unchanged means the target equals the current position, the item is
	// missing, or the item is static and not explicitly draggable.
	Unchanged
	// Rejected means the target collides and collision prevention is on.
	// The returned layout equals the input.
	Rejected
)

// String returns the result name.
func (r MoveResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case Unchanged:
		return "unchanged"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// probeID identifies the placeholder used to test a slot on the far side of
// an obstacle. Item ids are validated non-empty, so it never matches one.
const probeID = ""

// MoveElement moves the item with the given id to x, y and displaces the
// items it lands on. userAction marks a move driven directly by the user,
// which lets the first displaced item swap to the far side of the moving
// item when there is room.
//
// The target is clamped to the grid. The caller compacts afterwards unless
// opts.AllowOverlap is set.
//
// One call makes at most 16+4n² recursive moves for a layout of n items.
// A cascade that reaches the bound stops displacing; the items it has not
// reached keep their positions and may still overlap until compaction.
func MoveElement(l Layout, id string, x, y int, userAction bool, opts Options) (Layout, MoveResult) {
	i := l.Index(id)
	if i < 0 {
		return l.Clone(), Unchanged
	}

	m := &mover{
		layout:  l.Clone(),
		opts:    opts,
		visited: make(map[string]bool, len(l)),
		budget:  cascadeBudget(len(l)),
	}
	res := m.move(i, x, y, userAction, opts.PreventCollision)
	if res == Rejected {
		return l.Clone(), Rejected
	}
	return m.layout, res
}

// cascadeBudget bounds the number of recursive moves one call may make.
func cascadeBudget(n int) int {
	return 16 + n*n*4
}

// mover carries one cascade. visited holds the ids already placed in this
// cascade; they are never displaced again.
type mover struct {
	layout  Layout
	opts    Options
	visited map[string]bool
	budget  int
}

func (m *mover) move(i, x, y int, userAction, preventCollision bool) MoveResult {
	if m.budget <= 0 {
		return Unchanged
	}
	m.budget--

	it := &m.layout[i]
	if it.Static && (it.IsDraggable == nil || !*it.IsDraggable) {
		return Unchanged
	}
	if it.X == x && it.Y == y {
		return Unchanged
	}

	if m.opts.Cols > 0 {
		x = clamp(x, 0, m.opts.Cols-it.W)
	}
	y = max(y, 0)
	if it.X == x && it.Y == y {
		return Unchanged
	}

	oldX, oldY := it.X, it.Y
	movingUp := false
	switch m.opts.CompactType {
	case Horizontal:
		movingUp = oldX >= x
	case Vertical:
		movingUp = oldY >= y
	}

	it.X, it.Y = x, y
	m.visited[it.ID] = true

	if m.opts.AllowOverlap {
		return Moved
	}

	order := sortedIndices(m.layout, m.opts.CompactType)
	if movingUp {
		slices.Reverse(order)
	}
	var collisions []int
	for _, j := range order {
		if Collides(m.layout[j], *it) {
			collisions = append(collisions, j)
		}
	}

	if len(collisions) > 0 && preventCollision {
		it.X, it.Y = oldX, oldY
		delete(m.visited, it.ID)
		return Rejected
	}

	for _, j := range collisions {
		if m.visited[m.layout[j].ID] {
			continue
		}
		if m.layout[j].Static {
			m.awayFrom(j, i, userAction)
		} else {
			m.awayFrom(i, j, userAction)
		}
	}
	return Moved
}

// awayFrom displaces the item at index mv so it no longer sits on the item
// at index obstacle.
func (m *mover) awayFrom(obstacle, mv int, userAction bool) {
	compactH := m.opts.CompactType == Horizontal
	compactV := m.opts.CompactType == Vertical
	// Static obstacles must not be pushed through.
	preventCollision := m.layout[obstacle].Static

	if userAction {
		userAction = false
		cw, im := m.layout[obstacle], m.layout[mv]

		probe := Item{ID: probeID, X: im.X, Y: im.Y, W: im.W, H: im.H}
		if compactH {
			probe.X = max(cw.X-im.W, 0)
		}
		if compactV {
			probe.Y = max(cw.Y-im.H, 0)
		}

		fc, hit := FirstCollision(m.layout, probe)
		north := hit && fc.Y+fc.H > cw.Y
		west := hit && cw.X+cw.W > fc.X

		switch {
		case !hit:
			m.move(mv, probe.X, probe.Y, userAction, preventCollision)
			return
		case north && compactV:
			m.move(mv, im.X, cw.Y+1, userAction, preventCollision)
			return
		case north && m.opts.CompactType == NoCompaction:
			m.layout[obstacle].Y = im.Y
			m.layout[mv].Y = im.Y + im.H
			m.visited[im.ID] = true
			return
		case west && compactH:
			m.move(obstacle, im.X, cw.Y, userAction, preventCollision)
			return
		}
	}

	im := m.layout[mv]
	newX, newY := im.X, im.Y
	if compactH {
		newX++
	} else {
		newY++
	}
	m.move(mv, newX, newY, userAction, preventCollision)
}
