package ringheap

import "errors"

// ErrInvalidConfig indicates [New] was called with a capacity <= 0 or a nil
// comparator.
//
// It is only ever returned at construction. Push, PopTop and the peek
// operations report absence through their boolean result instead of
// failing.
var ErrInvalidConfig = errors.New("ringheap: invalid config")
