package service

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"
	"time"

	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/services/ranking/domain"
)

// fakeFeed serves items keyed by YYYYMMDD and page
type fakeFeed struct {
	mu    sync.Mutex
	pages map[string]map[int][]domain.RawItem
	fail  map[string]error
	calls []string
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{pages: map[string]map[int][]domain.RawItem{}, fail: map[string]error{}}
}

func (f *fakeFeed) add(day string, page int, items ...domain.RawItem) {
	if f.pages[day] == nil {
		f.pages[day] = map[int][]domain.RawItem{}
	}
	f.pages[day][page] = append(f.pages[day][page], items...)
}

func (f *fakeFeed) FetchPage(_ context.Context, day time.Time, page int) ([]domain.RawItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := day.Format(domain.DayLayout)
	f.calls = append(f.calls, key+"/"+strconv.Itoa(page))
	if err := f.fail[key]; err != nil {
		return nil, err
	}
	return f.pages[key][page], nil
}

// memSink records every Put in order
type memSink struct {
	mu    sync.Mutex
	names []string
	data  map[string]string
}

func (m *memSink) Put(_ context.Context, name string, r io.Reader) (int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string]string{}
	}
	m.names = append(m.names, name)
	m.data[name] = string(b)
	return int64(len(b)), nil
}

// scriptedFetcher fails the first failures calls per url with a transport error
type scriptedFetcher struct {
	mu       sync.Mutex
	failures int
	attempts map[string]int
	order    []string
	outcome  domain.Outcome
}

func (s *scriptedFetcher) Fetch(_ context.Context, url, name string) (domain.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempts == nil {
		s.attempts = map[string]int{}
	}
	s.attempts[url]++
	if s.attempts[url] <= s.failures {
		return domain.Result{URL: url, Name: name}, perr.Wrap(errors.New("connection reset"), perr.ErrorCodeAssetTransport, "asset request failed")
	}
	s.order = append(s.order, name)
	out := s.outcome
	if out == 0 {
		out = domain.OutcomeSaved
	}
	return domain.Result{Outcome: out, URL: url, Name: name, Status: 200}, nil
}

func thumb(id int) string {
	return "https://i.pximg.net/c/240x480/img-master/img/2024/03/01/00/00/12/" + strconv.Itoa(id) + "_p0_master1200.jpg"
}

func item(id uint64, pages string) domain.RawItem {
	return domain.RawItem{
		Title:     "title " + strconv.FormatUint(id, 10),
		IllustID:  id,
		URL:       thumb(int(id)),
		PageCount: domain.DeclaredCount(pages),
	}
}

func fixedNow() time.Time { return time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local) }
