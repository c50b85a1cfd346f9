package soi

// Canceler is polled cooperatively during rendering.
type Canceler interface {
	CancelRequested() bool
}

// CancelFunc adapts a function to Canceler.
type CancelFunc func() bool

func (f CancelFunc) CancelRequested() bool { return f() }
