package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"pixivrank/internal/core/normalize"
	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/platform/logger"
	"pixivrank/internal/services/ranking/domain"
	"pixivrank/internal/services/ranking/guardrails"
)

// Aggregation defaults
const (
	DefaultPagesPerDay = 4
	DefaultExcludeDays = 3
	DefaultAssetBase   = "https://i.pximg.net/img-original"
)

// originPath captures the dated path of a thumbnail URL up to the page marker
var originPath = regexp.MustCompile(`(/img/\d{4}/\d{2}/\d{2}/\d{2}/\d{2}/\d{2}/\d+)_p`)

// Aggregator builds the set of items to download across a window of days
type Aggregator struct {
	Feed     domain.FeedClient
	Filter   Filter
	Timeouts guardrails.Timeouts

	PagesPerDay int    // <=0 -> DefaultPagesPerDay
	ExcludeDays int    // <0 -> DefaultExcludeDays; 0 disables exclusion
	AssetBase   string // "" -> DefaultAssetBase

	// Now is the clock used to anchor the window; nil means time.Now
	Now func() time.Time
}

// Aggregate collects accepted items for windowLengthDays days walking back from
// today minus startOffsetDays, then drops every id seen in the following
// ExcludeDays days. Any feed error aborts with no partial result
func (a *Aggregator) Aggregate(ctx context.Context, startOffsetDays, windowLengthDays int) (domain.Aggregate, error) {
	if startOffsetDays < 0 || windowLengthDays < 0 {
		return nil, perr.InvalidArgf("day offset and length must be non negative, got %d and %d", startOffsetDays, windowLengthDays)
	}

	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	anchor := domain.Day(now()).AddDate(0, 0, -startOffsetDays)
	log := logger.C(ctx)

	agg := domain.Aggregate{}
	for i := 0; i < windowLengthDays; i++ {
		day := anchor.AddDate(0, 0, -i)
		err := a.eachItem(ctx, day, func(it domain.RawItem) {
			if !a.Filter.Accept(it) {
				return
			}
			w, err := a.workItem(it)
			if err != nil {
				log.Warn().Err(err).Uint64("illust_id", it.IllustID).Str("url", it.URL).Msg("ranking: skipping item")
				return
			}
			agg[w.ID] = w
		})
		if err != nil {
			return nil, err
		}
		log.Debug().Str("date", day.Format(domain.DayLayout)).Int("total", len(agg)).Msg("ranking: day collected")
	}

	excluded := 0
	for i := 0; i < a.excludeDays(); i++ {
		day := anchor.AddDate(0, 0, -(windowLengthDays + i))
		err := a.eachItem(ctx, day, func(it domain.RawItem) {
			if _, ok := agg[it.IllustID]; ok {
				delete(agg, it.IllustID)
				excluded++
			}
		})
		if err != nil {
			return nil, err
		}
	}
	log.Info().Int("items", len(agg)).Int("excluded", excluded).Msg("ranking: aggregated")
	return agg, nil
}

// eachItem walks pages 1..PagesPerDay of one day
func (a *Aggregator) eachItem(ctx context.Context, day time.Time, fn func(domain.RawItem)) error {
	pages := a.PagesPerDay
	if pages <= 0 {
		pages = DefaultPagesPerDay
	}
	for p := 1; p <= pages; p++ {
		items, err := a.fetch(ctx, day, p)
		if err != nil {
			return perr.WithOp(err, "ranking.aggregate")
		}
		for _, it := range items {
			fn(it)
		}
	}
	return nil
}

func (a *Aggregator) fetch(ctx context.Context, day time.Time, page int) ([]domain.RawItem, error) {
	fctx, cancel := guardrails.ForFeed(ctx, a.Timeouts)
	defer cancel()
	return a.Feed.FetchPage(fctx, day, page)
}

func (a *Aggregator) excludeDays() int {
	if a.ExcludeDays < 0 {
		return DefaultExcludeDays
	}
	return a.ExcludeDays
}

// workItem rewrites a thumbnail URL into the origin asset prefix
func (a *Aggregator) workItem(it domain.RawItem) (domain.WorkItem, error) {
	m := originPath.FindStringSubmatch(it.URL)
	if m == nil {
		return domain.WorkItem{}, perr.Malformedf("url %q has no dated asset path", it.URL)
	}
	base := a.AssetBase
	if base == "" {
		base = DefaultAssetBase
	}
	return domain.WorkItem{
		OriginPrefix: strings.TrimRight(base, "/") + m[1] + "_",
		ID:           it.IllustID,
		Title:        normalize.Title(it.Title),
		Pages:        it.ResolvedPages(),
	}, nil
}
