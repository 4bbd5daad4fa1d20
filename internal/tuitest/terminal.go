package tuitest

import (
	"bytes"
	"io"
)

// terminalQuery pairs a capability query the program may send with the
// canned reply a real terminal would give.
type terminalQuery struct {
	pattern  []byte
	response []byte
}

var terminalQueries = []terminalQuery{
	{[]byte("\x1b[6n"), []byte("\x1b[1;1R")},
	{[]byte("\x1b]10;?\x07"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x07")},
	{[]byte("\x1b]10;?\x1b\\"), []byte("\x1b]10;rgb:cccc/cccc/cccc\x1b\\")},
	{[]byte("\x1b]11;?\x07"), []byte("\x1b]11;rgb:0000/0000/0000\x07")},
	{[]byte("\x1b]11;?\x1b\\"), []byte("\x1b]11;rgb:0000/0000/0000\x1b\\")},
}

// terminalResponder answers queries so glamour's background detection and
// bubbletea's cursor probes do not stall waiting for a reply.
type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	for tr.answerOne() {
	}
	// Keep a tail so a query split across reads is still seen.
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

// answerOne replies to the earliest pending query in the buffer.
func (tr *terminalResponder) answerOne() bool {
	first, firstIdx := -1, len(tr.buf)
	for i, q := range terminalQueries {
		if idx := bytes.Index(tr.buf, q.pattern); idx >= 0 && idx < firstIdx {
			first, firstIdx = i, idx
		}
	}
	if first < 0 {
		return false
	}
	q := terminalQueries[first]
	tr.buf = tr.buf[firstIdx+len(q.pattern):]
	_, _ = tr.w.Write(q.response)
	return true
}
