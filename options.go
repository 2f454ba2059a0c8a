package curvedit

// StoreOption configures a Store during creation.
//
// Example:
//
//	store := curvedit.NewStore(
//	    curvedit.WithObserver(func(c curvedit.Change) { redraw(c) }),
//	)
type StoreOption func(*storeOptions)

type storeOptions struct {
	observers []func(Change)
	view      ViewParams
}

// WithObserver registers a change observer at construction time.
// Equivalent to calling Store.Observe immediately after NewStore.
func WithObserver(fn func(Change)) StoreOption {
	return func(o *storeOptions) {
		o.observers = append(o.observers, fn)
	}
}

// WithViewParams sets the initial view parameters of the Store.
// Without this option the Store starts with DefaultViewParams(0, 0) and
// expects a SetViewParams once the display size is known.
func WithViewParams(vp ViewParams) StoreOption {
	return func(o *storeOptions) {
		o.view = vp
	}
}

// EngineOption configures a transform Engine during creation.
type EngineOption func(*engineOptions)

type engineOptions struct {
	memoCapacity int
}

// WithMemoCapacity sets the soft limit of the transform memo.
// A capacity <= 0 selects DefaultMemoCapacity.
func WithMemoCapacity(n int) EngineOption {
	return func(o *engineOptions) {
		if n > 0 {
			o.memoCapacity = n
		}
	}
}

// HistoryOption configures a History during creation.
type HistoryOption func(*historyOptions)

type historyOptions struct {
	limit int
}

// WithLimit bounds the number of retained undo entries. When the limit
// is exceeded the oldest entry is discarded. A limit <= 0 means
// unlimited.
func WithLimit(n int) HistoryOption {
	return func(o *historyOptions) {
		o.limit = n
	}
}
