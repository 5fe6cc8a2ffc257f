package mameduino

import (
	"bytes"
	"context"
	"time"
)

// fakePort replays one scripted chunk per Read call and records writes
type fakePort struct {
	written  bytes.Buffer
	chunks   [][]byte
	reads    int
	short    int // when > 0, Write reports this many bytes
	writeErr error
	readErr  error
	flushed  int
	closed   int
}

func newFakePort(chunks ...string) *fakePort {
	f := &fakePort{}
	for _, c := range chunks {
		f.chunks = append(f.chunks, []byte(c))
	}
	return f
}

func (f *fakePort) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.written.Write(p)
	if f.short > 0 {
		return f.short, nil
	}
	return len(p), nil
}

func (f *fakePort) Read(p []byte) (int, error) {
	i := f.reads
	f.reads++
	if i < len(f.chunks) {
		return copy(p, f.chunks[i]), nil
	}
	return 0, f.readErr
}

func (f *fakePort) FlushInput() error {
	f.flushed++
	return nil
}

func (f *fakePort) Close() error {
	f.closed++
	return nil
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestClient(port Port, opts ...Option) *Client {
	c := NewClient("/dev/ttyACM0", port, opts...)
	c.sleep = noSleep
	return c
}
