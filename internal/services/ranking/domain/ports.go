package domain

import (
	"context"
	"io"
	"time"
)

// RunnerPort is the public port exposed by the ranking module
type RunnerPort interface {
	Run(ctx context.Context, startOffsetDays, windowLengthDays int) (Summary, error)
}

// FeedClient fetches one ranking page for one day. Pages are 1-based
type FeedClient interface {
	FetchPage(ctx context.Context, day time.Time, page int) ([]RawItem, error)
}

// Sink stores downloaded assets by name. Put must not leave a complete-looking
// object behind when r fails mid-stream
type Sink interface {
	Put(ctx context.Context, name string, r io.Reader) (int64, error)
}

// AssetFetcher downloads one asset with the extension fallback applied
type AssetFetcher interface {
	Fetch(ctx context.Context, url, name string) (Result, error)
}
