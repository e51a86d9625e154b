package statemachine

import (
	"errors"
	"fmt"
)

// State identifies the mode a Machine is in. Valid values are [0, maxState).
type State uint32

// Event identifies a stimulus. Valid values are [0, maxEvent).
type Event uint32

// Flags parametrise State and Dispatch.
type Flags uint32

// NonBlock makes State and Dispatch use Locker.TryAcquire instead of
// Locker.Acquire. Same value as O_NONBLOCK on Linux.
const NonBlock Flags = 2048

// Status is a numeric result code. Success and WouldBlock are reserved;
// resolvers and cleanups may return any other Status as an error and it is
// propagated unchanged. A resolver or cleanup returning Success is treated
// like one returning nil.
type Status uint32

const (
	Success    Status = 0
	WouldBlock Status = 1
)

func (s Status) Error() string {
	switch s {
	case Success:
		return "success"
	case WouldBlock:
		return "operation would block"
	default:
		return fmt.Sprintf("status %d", uint32(s))
	}
}

// normalize folds a bare Success returned as an error into nil.
func normalize(err error) error {
	if err == error(Success) {
		return nil
	}
	return err
}

// ErrWouldBlock is returned when NonBlock was requested and the lock is held
// elsewhere. Nothing was read, mutated or called.
var ErrWouldBlock error = WouldBlock

// StatusOf maps err back to a numeric Status. nil maps to Success. ok is
// false when err carries no Status.
func StatusOf(err error) (s Status, ok bool) {
	if err == nil {
		return Success, true
	}
	if errors.As(err, &s) {
		return s, true
	}
	return 0, false
}
