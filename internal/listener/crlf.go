package listener

import (
	"bytes"
	"io"
)

// lineEndings translates between network line endings and the bare \n the
// shell uses. Reads fold \r\n and lone \r into \n, writes expand \n to \r\n.
type lineEndings struct {
	rw io.ReadWriter
	// pendingCR is set when the previous read ended in \r, so a leading \n
	// in the next read belongs to the same line break.
	pendingCR bool
}

func newLineEndings(rw io.ReadWriter) *lineEndings {
	return &lineEndings{rw: rw}
}

func (l *lineEndings) Read(p []byte) (int, error) {
	n, err := l.rw.Read(p)
	if n == 0 {
		return n, err
	}

	data := p[:n]
	if l.pendingCR && data[0] == '\n' {
		data = data[1:]
	}
	l.pendingCR = len(data) > 0 && data[len(data)-1] == '\r'

	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return copy(p, data), err
}

func (l *lineEndings) Write(p []byte) (int, error) {
	if _, err := l.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
