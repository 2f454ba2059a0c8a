package curvedit

// Concrete commands for the edits an interactive session performs. Each
// constructor takes parameters only; state needed for Undo is captured
// inside Execute, against the store as it is at that moment.

// DeleteSelected returns a command that removes the selected points of
// the named curve and clears its selection. One undo restores both the
// points and the exact selection.
func DeleteSelected(curveName string) Command {
	return &deleteSelectedCommand{curveName: curveName}
}

type deleteSelectedCommand struct {
	curveName string

	// Captured during Execute.
	before  []Point
	after   []Point
	prevSel []int
}

func (c *deleteSelectedCommand) Name() string { return "delete selected points" }

func (c *deleteSelectedCommand) Execute(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	sel := s.Selection(c.curveName)
	if sel.Len() == 0 {
		return invalidOp(c.Name(), "no points selected on "+c.curveName)
	}

	c.before = curve.Points()
	c.prevSel = sel.Indices()
	c.after = c.after[:0]
	for i, p := range c.before {
		if !sel.Has(i) {
			c.after = append(c.after, p)
		}
	}
	return c.apply(s)
}

func (c *deleteSelectedCommand) Undo(s *Store) error {
	if err := s.SetCurve(c.curveName, c.before); err != nil {
		return err
	}
	s.SetSelection(c.curveName, c.prevSel)
	return nil
}

func (c *deleteSelectedCommand) Redo(s *Store) error { return c.apply(s) }

func (c *deleteSelectedCommand) apply(s *Store) error {
	if err := s.SetCurve(c.curveName, c.after); err != nil {
		return err
	}
	s.SetSelection(c.curveName, nil)
	return nil
}

// MovePoints returns a command that translates the given points of the
// named curve by (dx, dy) in data space. The inverse translation is the
// exact undo, so nothing needs to be captured.
func MovePoints(curveName string, indices []int, dx, dy float64) Command {
	idx := make([]int, len(indices))
	copy(idx, indices)
	return &movePointsCommand{curveName: curveName, indices: idx, dx: dx, dy: dy}
}

type movePointsCommand struct {
	curveName string
	indices   []int
	dx, dy    float64
}

func (c *movePointsCommand) Name() string { return "move points" }

func (c *movePointsCommand) Execute(s *Store) error { return c.translate(s, c.dx, c.dy) }
func (c *movePointsCommand) Undo(s *Store) error    { return c.translate(s, -c.dx, -c.dy) }
func (c *movePointsCommand) Redo(s *Store) error    { return c.translate(s, c.dx, c.dy) }

func (c *movePointsCommand) translate(s *Store, dx, dy float64) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	points := curve.Points()
	for _, i := range c.indices {
		if i < 0 || i >= len(points) {
			return invalidOp(c.Name(), "point index out of range")
		}
	}
	for _, i := range c.indices {
		points[i] = points[i].Offset(dx, dy)
	}
	return s.SetCurve(c.curveName, points)
}

// SetPointStatus returns a command that sets the status of the given
// points. Previous statuses are captured at execute time for undo.
func SetPointStatus(curveName string, indices []int, status PointStatus) Command {
	idx := make([]int, len(indices))
	copy(idx, indices)
	return &setStatusCommand{curveName: curveName, indices: idx, status: status}
}

type setStatusCommand struct {
	curveName string
	indices   []int
	status    PointStatus

	// Captured during Execute, parallel to indices.
	prev []PointStatus
}

func (c *setStatusCommand) Name() string { return "set point status" }

func (c *setStatusCommand) Execute(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	points := curve.Points()
	for _, i := range c.indices {
		if i < 0 || i >= len(points) {
			return invalidOp(c.Name(), "point index out of range")
		}
	}
	c.prev = c.prev[:0]
	for _, i := range c.indices {
		c.prev = append(c.prev, points[i].Status)
		points[i] = points[i].WithStatus(c.status)
	}
	return s.SetCurve(c.curveName, points)
}

func (c *setStatusCommand) Undo(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	points := curve.Points()
	for n, i := range c.indices {
		if i < 0 || i >= len(points) {
			return invalidOp(c.Name(), "point index out of range")
		}
		points[i] = points[i].WithStatus(c.prev[n])
	}
	return s.SetCurve(c.curveName, points)
}

func (c *setStatusCommand) Redo(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	points := curve.Points()
	for _, i := range c.indices {
		if i < 0 || i >= len(points) {
			return invalidOp(c.Name(), "point index out of range")
		}
		points[i] = points[i].WithStatus(c.status)
	}
	return s.SetCurve(c.curveName, points)
}

// InsertPoint returns a command that inserts a point into the named
// curve at its frame position. Selection indices at or past the
// insertion point are shifted so they keep referring to the same
// points; undo restores the exact previous selection.
func InsertPoint(curveName string, p Point) Command {
	return &insertPointCommand{curveName: curveName, point: p}
}

type insertPointCommand struct {
	curveName string
	point     Point

	// Captured during Execute.
	insertAt int
	prevSel  []int
}

func (c *insertPointCommand) Name() string { return "insert point" }

func (c *insertPointCommand) Execute(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	if _, _, exists := curve.PointAtFrame(c.point.Frame); exists {
		return invalidOp(c.Name(), "frame already has a point")
	}

	points := curve.Points()
	at := len(points)
	for i, p := range points {
		if p.Frame > c.point.Frame {
			at = i
			break
		}
	}
	c.insertAt = at
	c.prevSel = s.Selection(c.curveName).Indices()

	points = append(points, Point{})
	copy(points[at+1:], points[at:])
	points[at] = c.point

	if err := s.SetCurve(c.curveName, points); err != nil {
		return err
	}
	shifted := make([]int, 0, len(c.prevSel))
	for _, i := range c.prevSel {
		if i >= at {
			i++
		}
		shifted = append(shifted, i)
	}
	s.SetSelection(c.curveName, shifted)
	return nil
}

func (c *insertPointCommand) Undo(s *Store) error {
	curve, ok := s.Curve(c.curveName)
	if !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	_, at, exists := curve.PointAtFrame(c.point.Frame)
	if !exists {
		return invalidOp(c.Name(), "inserted point no longer present")
	}
	points := curve.Points()
	points = append(points[:at], points[at+1:]...)
	if err := s.SetCurve(c.curveName, points); err != nil {
		return err
	}
	s.SetSelection(c.curveName, c.prevSel)
	return nil
}

func (c *insertPointCommand) Redo(s *Store) error { return c.Execute(s) }

// SetCurveData returns a command that replaces the named curve's data
// wholesale, creating the curve if it does not exist. The previous data
// and selection are captured at execute time; undo removes the curve
// again when it was created by this command.
func SetCurveData(curveName string, points []Point) Command {
	cp := make([]Point, len(points))
	copy(cp, points)
	return &setCurveDataCommand{curveName: curveName, points: cp}
}

type setCurveDataCommand struct {
	curveName string
	points    []Point

	// Captured during Execute.
	existed bool
	before  []Point
	prevSel []int
}

func (c *setCurveDataCommand) Name() string { return "set curve data" }

func (c *setCurveDataCommand) Execute(s *Store) error {
	if curve, ok := s.Curve(c.curveName); ok {
		c.existed = true
		c.before = curve.Points()
		c.prevSel = s.Selection(c.curveName).Indices()
	} else {
		c.existed = false
		c.before = nil
		c.prevSel = nil
	}
	return s.SetCurve(c.curveName, c.points)
}

func (c *setCurveDataCommand) Undo(s *Store) error {
	if !c.existed {
		if !s.RemoveCurve(c.curveName) {
			return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
		}
		return nil
	}
	if err := s.SetCurve(c.curveName, c.before); err != nil {
		return err
	}
	s.SetSelection(c.curveName, c.prevSel)
	return nil
}

func (c *setCurveDataCommand) Redo(s *Store) error {
	return s.SetCurve(c.curveName, c.points)
}

// SelectPoints returns a command that replaces the named curve's
// selection, so that selection changes participate in undo alongside
// data edits.
func SelectPoints(curveName string, indices []int) Command {
	idx := make([]int, len(indices))
	copy(idx, indices)
	return &selectPointsCommand{curveName: curveName, indices: idx}
}

type selectPointsCommand struct {
	curveName string
	indices   []int

	// Captured during Execute.
	prevSel []int
}

func (c *selectPointsCommand) Name() string { return "select points" }

func (c *selectPointsCommand) Execute(s *Store) error {
	if _, ok := s.Curve(c.curveName); !ok {
		return invalidOp(c.Name(), "curve "+c.curveName+" does not exist")
	}
	c.prevSel = s.Selection(c.curveName).Indices()
	s.SetSelection(c.curveName, c.indices)
	return nil
}

func (c *selectPointsCommand) Undo(s *Store) error {
	s.SetSelection(c.curveName, c.prevSel)
	return nil
}

func (c *selectPointsCommand) Redo(s *Store) error {
	s.SetSelection(c.curveName, c.indices)
	return nil
}
