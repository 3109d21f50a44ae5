package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	perr "pixivrank/internal/platform/errors"
	"pixivrank/internal/platform/logger"
	"pixivrank/internal/services/ranking/domain"
	"pixivrank/internal/services/ranking/guardrails"
)

type fetchStep uint8

const (
	stepPrimary fetchStep = iota
	stepFallback
)

// Downloader fetches a single asset into a Sink, retrying once under the
// fallback extension when the primary one is missing
type Downloader struct {
	HTTP     *http.Client
	Sink     domain.Sink
	Timeouts guardrails.Timeouts
	log      logger.Logger
}

// NewDownloader wires a Downloader around the shared client
func NewDownloader(hc *http.Client, sink domain.Sink, t guardrails.Timeouts) *Downloader {
	if hc == nil {
		hc = http.DefaultClient
	}
	if sink == nil {
		panic("ranking.Downloader requires a non nil Sink")
	}
	return &Downloader{HTTP: hc, Sink: sink, Timeouts: t, log: *logger.Named("asset")}
}

// Fetch downloads url into name. Status outcomes come back as a Result;
// transport, stream and sink failures come back as ErrorCodeAssetTransport
func (d *Downloader) Fetch(ctx context.Context, url, name string) (domain.Result, error) {
	step := stepPrimary
	for {
		res, err := d.attempt(ctx, url, name)
		if err != nil {
			return res, err
		}

		switch {
		case res.Status == http.StatusOK:
			res.Outcome = domain.OutcomeSaved
			return res, nil

		case res.Status == http.StatusNotFound && step == stepPrimary && strings.HasSuffix(url, domain.ExtPrimary):
			d.log.Debug().Str("url", url).Msg("asset missing, trying fallback extension")
			url = swapExt(url)
			name = swapExt(name)
			step = stepFallback

		case res.Status == http.StatusNotFound:
			res.Outcome = domain.OutcomeNotFound
			d.log.Warn().Str("url", url).Msg("asset not found")
			return res, nil

		default:
			res.Outcome = domain.OutcomeSkipped
			d.log.Warn().Str("url", url).Int("status", res.Status).Msg("asset skipped on unexpected status")
			return res, nil
		}
	}
}

// attempt performs one GET. The body is stored only on 200
func (d *Downloader) attempt(ctx context.Context, url, name string) (domain.Result, error) {
	res := domain.Result{URL: url, Name: name}

	actx, cancel := guardrails.ForAsset(ctx, d.Timeouts)
	defer cancel()

	req, err := http.NewRequestWithContext(actx, http.MethodGet, url, nil)
	if err != nil {
		// a bad URL never gets better
		return res, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "asset new request failed for %s", url)
	}

	start := time.Now()
	resp, err := d.HTTP.Do(req)
	if err != nil {
		return res, perr.Wrapf(err, perr.ErrorCodeAssetTransport, "asset request failed for %s", url)
	}
	defer func() { _ = resp.Body.Close() }()
	res.Status = resp.StatusCode

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return res, nil
	}

	n, err := d.Sink.Put(actx, name, resp.Body)
	if err != nil {
		return res, perr.Wrapf(err, perr.ErrorCodeAssetTransport, "asset store failed for %s", name)
	}
	res.Bytes = n
	d.log.Debug().Str("name", name).Int64("bytes", n).Dur("took", time.Since(start)).Msg("asset saved")
	return res, nil
}

func swapExt(s string) string {
	return strings.TrimSuffix(s, domain.ExtPrimary) + domain.ExtFallback
}
