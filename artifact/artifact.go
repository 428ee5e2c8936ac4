// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package artifact provides the destinations that tables, reports
// and plots are written to.
package artifact

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// A Sink creates named output files. Names are slash-separated
// paths; any directories they mention are created as needed.
type Sink interface {
	// Create returns a writer for name. The file is complete once
	// the writer is closed without error.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

// Write creates name in s and fills it with f.
func Write(ctx context.Context, s Sink, name string, f func(w io.Writer) error) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := f(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// DirSink writes files below a local directory.
type DirSink struct {
	Dir string
}

// Create implements Sink.
func (s DirSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	p := filepath.Join(s.Dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0777); err != nil {
		return nil, err
	}
	return os.Create(p)
}

// MemSink holds files in memory.
type MemSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemSink returns an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{files: make(map[string][]byte)}
}

type memWriter struct {
	bytes.Buffer
	s    *MemSink
	name string
}

func (w *memWriter) Close() error {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	w.s.files[w.name] = w.Bytes()
	return nil
}

// Create implements Sink.
func (s *MemSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	return &memWriter{s: s, name: name}, nil
}

// File returns the contents of name, which must have been closed.
func (s *MemSink) File(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	return b, ok
}

// Names returns the names of every file in s, sorted.
func (s *MemSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var names []string
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
