package curvedit

// ChangeKind identifies which part of the Store a Change refers to.
type ChangeKind uint8

const (
	// ChangeCurveData means a curve's point sequence changed; Key is the
	// curve name.
	ChangeCurveData ChangeKind = iota

	// ChangeSelection means a curve's selection changed; Key is the
	// curve name.
	ChangeSelection

	// ChangeActiveCurve means the active-curve pointer moved; Key is empty.
	ChangeActiveCurve

	// ChangeFrame means the current frame changed; Key is empty.
	ChangeFrame

	// ChangeView means the view parameters were replaced; Key is empty.
	ChangeView
)

// String returns the kind name for logging and test output.
func (k ChangeKind) String() string {
	switch k {
	case ChangeCurveData:
		return "curve-data"
	case ChangeSelection:
		return "selection"
	case ChangeActiveCurve:
		return "active-curve"
	case ChangeFrame:
		return "frame"
	case ChangeView:
		return "view"
	default:
		return "unknown"
	}
}

// Change identifies one mutation of the Store. Observers receive the
// kind and the affected key only; they re-query the Store for the new
// state rather than getting a payload inline.
type Change struct {
	Kind ChangeKind
	Key  string
}

// observer is one registered change callback.
type observer struct {
	id int
	fn func(Change)
}

// notifier delivers Change values to registered observers, either
// immediately or buffered inside a batch scope.
//
// Batched emissions deduplicate by the full (kind, key) pair: two
// selection changes on different curves are two notifications, only
// repeat changes to the same pair collapse. Delivery order is the order
// in which each pair was first touched within the batch.
type notifier struct {
	observers []observer
	nextID    int

	depth   int
	pending []Change
	seen    map[Change]struct{}
}

// observe registers fn and returns a function that removes it.
func (n *notifier) observe(fn func(Change)) func() {
	id := n.nextID
	n.nextID++
	n.observers = append(n.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range n.observers {
			if o.id == id {
				n.observers = append(n.observers[:i], n.observers[i+1:]...)
				return
			}
		}
	}
}

// emit delivers c now, or buffers it if a batch scope is open.
func (n *notifier) emit(c Change) {
	if n.depth > 0 {
		if _, dup := n.seen[c]; dup {
			return
		}
		n.seen[c] = struct{}{}
		n.pending = append(n.pending, c)
		return
	}
	n.deliver(c)
}

// begin opens a batch scope. Scopes nest; buffered changes flush when
// the outermost scope ends.
func (n *notifier) begin() {
	if n.depth == 0 {
		n.seen = make(map[Change]struct{})
	}
	n.depth++
}

// end closes a batch scope, flushing buffered changes if it was the
// outermost one. The buffer is detached before delivery so an observer
// that mutates the Store re-enters a clean notifier.
func (n *notifier) end() {
	n.depth--
	if n.depth > 0 {
		return
	}
	flushed := n.pending
	n.pending = nil
	n.seen = nil
	for _, c := range flushed {
		n.deliver(c)
	}
}

// deliver calls every observer synchronously. The observer slice is
// copied first so removal during delivery stays safe.
func (n *notifier) deliver(c Change) {
	obs := make([]observer, len(n.observers))
	copy(obs, n.observers)
	for _, o := range obs {
		o.fn(c)
	}
}
