package pixiv

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/platform/logger"
	"pixivrank/internal/services/ranking/domain"
)

// DefaultFeedURL is the daily illustration ranking in JSON form
const DefaultFeedURL = "https://www.pixiv.net/ranking.php?mode=daily&content=illust&format=json"

// Client fetches ranking pages
type Client struct {
	HTTP    *http.Client
	FeedURL string
	log     logger.Logger
}

// NewClient creates a Client; an empty feedURL uses DefaultFeedURL
func NewClient(hc *http.Client, feedURL string) *Client {
	if hc == nil {
		hc = NewHTTPClient(HTTPOptions{})
	}
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{HTTP: hc, FeedURL: feedURL, log: *logger.Named("feed")}
}

// FetchPage returns the entries of ranking page `page` (1-based) for day
func (c *Client) FetchPage(ctx context.Context, day time.Time, page int) ([]domain.RawItem, error) {
	u, err := c.pageURL(day, page)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFeedTransport, "feed new request failed")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFeedTransport, "feed request failed for %s", u)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("date", day.Format(domain.DayLayout)).
		Int("page", page).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("feed http response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, perr.Newf(perr.ErrorCodeFeedTransport, "feed unexpected status %d for %s body %s", resp.StatusCode, u, string(body))
	}

	var fp domain.FeedPage
	if err := json.NewDecoder(resp.Body).Decode(&fp); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeFeedDecode, "feed decode failed for %s", u)
	}
	return fp.Contents, nil
}

func (c *Client) pageURL(day time.Time, page int) (string, error) {
	u, err := url.Parse(c.FeedURL)
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad feed url %q", c.FeedURL)
	}
	q := u.Query()
	q.Set("p", strconv.Itoa(page))
	q.Set("date", day.Format(domain.DayLayout))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
