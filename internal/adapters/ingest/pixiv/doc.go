// Package pixiv talks to the pixiv daily ranking feed
//
// Design choices:
// - One shared *http.Client for the feed and the asset host so connections are reused.
// - Browser User-Agent and ranking-page Referer are set by the transport, not per call;
//   both hosts reject requests without them.
// - No retry here. Ranking failures abort the run, asset retries belong to the worker.
package pixiv
