package soi

import (
	"bufio"
	"io"
	"strconv"
	"sync"
)

// OrbitLogger receives diagnostic orbit samples.
type OrbitLogger interface {
	LogOrbitSample(re, im, value float64)
}

// OrbitLog writes one whitespace separated line per sample. It is safe for
// concurrent use.
type OrbitLog struct {
	mu  sync.Mutex
	w   *bufio.Writer
	buf []byte
	err error
}

func NewOrbitLog(w io.Writer) *OrbitLog {
	return &OrbitLog{w: bufio.NewWriter(w)}
}

func (l *OrbitLog) LogOrbitSample(re, im, value float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	b := l.buf[:0]
	b = strconv.AppendFloat(b, re, 'g', -1, 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, im, 'g', -1, 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, value, 'g', -1, 64)
	b = append(b, '\n')
	l.buf = b
	_, l.err = l.w.Write(b)
}

// Flush writes buffered samples and returns the first write error seen.
func (l *OrbitLog) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.err = l.w.Flush()
	return l.err
}
