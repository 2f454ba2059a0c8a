package curvedit

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID returns the numeric id of the calling goroutine, parsed
// from the first line of its stack trace ("goroutine N [running]:").
// There is no supported API for this; the id is used only to detect
// mutation from the wrong goroutine, never for scheduling decisions.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(string(fields[1]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// owner records which goroutine may mutate a structure. The Store and
// History have no internal locking; instead of locks, they assert that
// all mutation arrives on the goroutine that created them. Background
// work must marshal its results onto the owner goroutine before calling
// any mutation entry point.
type owner struct {
	gid uint64
}

// capture binds the owner to the calling goroutine.
func (o *owner) capture() {
	o.gid = goroutineID()
}

// check panics with *ReentrancyError when called from a goroutine other
// than the owner.
func (o *owner) check() {
	if gid := goroutineID(); gid != o.gid {
		panic(&ReentrancyError{Owner: o.gid, Caller: gid})
	}
}
