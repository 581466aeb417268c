package searchclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// Stream delivers items one at a time across however many pages the search
// spans, following "next" links until one is absent. It is single-consumer
// and not restartable: once Next returns io.EOF or an error, the stream is
// done. Dropping the stream (not calling Next again) aborts any in-flight
// request via ctx cancellation on the next/current call.
type Stream struct {
	client *Client
	params *search.Params

	pending bool // discovery + first request not yet built

	items []*stac.Item
	idx   int

	nextMethod string
	nextURL    string
	nextBody   []byte
	exhausted  bool
}

// Next returns the next item, io.EOF once the stream is exhausted, or an
// error if a page request or decode failed (which also ends the stream).
func (s *Stream) Next(ctx context.Context) (*stac.Item, error) {
	if s.pending {
		if err := s.client.ensureDiscovered(ctx); err != nil {
			s.exhausted = true
			return nil, err
		}
		method, url, body, err := s.client.buildRequest(s.params)
		if err != nil {
			s.exhausted = true
			return nil, err
		}
		s.nextMethod, s.nextURL, s.nextBody = method, url, body
		s.pending = false
	}

	for s.idx >= len(s.items) {
		if s.exhausted {
			return nil, io.EOF
		}
		if err := s.fetchPage(ctx); err != nil {
			s.exhausted = true
			return nil, err
		}
	}

	item := s.items[s.idx]
	s.idx++
	return item, nil
}

func (s *Stream) fetchPage(ctx context.Context) error {
	if s.nextURL == "" {
		s.exhausted = true
		return nil
	}

	data, err := s.client.do(ctx, s.nextMethod, s.nextURL, s.nextBody)
	if err != nil {
		return err
	}
	entity, err := href.ParseEntity(data)
	if err != nil {
		return fmt.Errorf("searchclient: decoding search response: %w", err)
	}
	ic, ok := entity.(*stac.ItemCollection)
	if !ok {
		return fmt.Errorf("searchclient: expected an ItemCollection, got %T", entity)
	}

	s.items = ic.Features
	s.idx = 0

	next := ic.Next()
	if next == nil {
		s.nextURL = ""
		return nil
	}
	method := next.Method
	if method == "" {
		method = http.MethodGet
	}
	s.nextMethod = strings.ToUpper(method)
	s.nextURL = href.Absolute(next.Href, s.nextURL)
	if len(next.Body) > 0 {
		s.nextBody = []byte(next.Body)
	} else {
		s.nextBody = nil
	}
	return nil
}
