// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package artifact

import (
	"context"
	"io"
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// GCSSink writes objects to a Google Cloud Storage bucket.
type GCSSink struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewGCSSink returns a sink writing to bucket, with every object name
// prefixed by prefix. If credentials is non-empty it names a service
// account key file; otherwise the application default credentials
// are used.
func NewGCSSink(ctx context.Context, bucket, prefix, credentials string) (*GCSSink, error) {
	var opt option.ClientOption
	if credentials != "" {
		opt = option.WithCredentialsFile(credentials)
	} else {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, err
		}
		opt = option.WithTokenSource(ts)
	}
	client, err := storage.NewClient(ctx, opt)
	if err != nil {
		return nil, err
	}
	return &GCSSink{bucket: client.Bucket(bucket), prefix: prefix}, nil
}

// Create implements Sink. The object is only visible once the writer
// is closed.
func (s *GCSSink) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	w := s.bucket.Object(path.Join(s.prefix, name)).NewWriter(ctx)
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.ContentType = ct
	}
	return w, nil
}
