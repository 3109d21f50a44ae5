package module

import (
	"time"

	"pixivrank/internal/adapters/ingest/pixiv"
	"pixivrank/internal/platform/config"
	"pixivrank/internal/platform/validate"
	"pixivrank/internal/services/ranking/service"
)

// Options holds configuration for the ranking module
type Options struct {
	Workers      int           `env:"RANK_WORKERS" validate:"min=1,max=256"`
	PagesPerDay  int           `env:"RANK_PAGES_PER_DAY" validate:"min=1,max=50"`
	ExcludeDays  int           `env:"RANK_EXCLUDE_DAYS" validate:"gte=0"`
	MaxPages     int           `env:"RANK_MAX_PAGES" validate:"min=1"`
	RetryBackoff time.Duration `env:"RANK_RETRY_BACKOFF" validate:"gte=0"`

	// Storage: BucketURL wins over OutDir when set
	OutDir       string `env:"RANK_OUT_DIR" validate:"required_without=BucketURL"`
	BucketURL    string `env:"RANK_BUCKET_URL"`
	BucketPrefix string `env:"RANK_BUCKET_PREFIX"`

	FeedURL   string `env:"RANK_FEED_URL" validate:"required,url"`
	AssetBase string `env:"RANK_ASSET_BASE" validate:"required,url"`
	Referer   string `env:"RANK_REFERER"`
	UserAgent string `env:"RANK_USER_AGENT"`

	HTTPTimeout  time.Duration `env:"RANK_HTTP_TIMEOUT" validate:"gte=0"`
	FeedTimeout  time.Duration `env:"RANK_FEED_TIMEOUT" validate:"gte=0"`
	AssetTimeout time.Duration `env:"RANK_ASSET_TIMEOUT" validate:"gte=0"`
}

// FromConfig reads the ranking options from config with RANK_ prefix
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("RANK_")
	return Options{
		Workers:      rc.MayInt("WORKERS", service.DefaultWorkers),
		PagesPerDay:  rc.MayInt("PAGES_PER_DAY", service.DefaultPagesPerDay),
		ExcludeDays:  rc.MayInt("EXCLUDE_DAYS", service.DefaultExcludeDays),
		MaxPages:     rc.MayInt("MAX_PAGES", service.DefaultMaxPages),
		RetryBackoff: rc.MayDuration("RETRY_BACKOFF", service.DefaultRetryBackoff),

		OutDir:       rc.MayString("OUT_DIR", "./pixiv_pic"),
		BucketURL:    rc.MayString("BUCKET_URL", ""),
		BucketPrefix: rc.MayString("BUCKET_PREFIX", ""),

		FeedURL:   rc.MayURL("FEED_URL", pixiv.DefaultFeedURL),
		AssetBase: rc.MayURL("ASSET_BASE", service.DefaultAssetBase),
		Referer:   rc.MayString("REFERER", pixiv.DefaultReferer),
		UserAgent: rc.MayString("USER_AGENT", pixiv.DefaultUserAgent),

		HTTPTimeout:  rc.MayDuration("HTTP_TIMEOUT", 0),
		FeedTimeout:  rc.MayDuration("FEED_TIMEOUT", 0),
		AssetTimeout: rc.MayDuration("ASSET_TIMEOUT", 0),
	}
}

// Validate checks option ranges and reports the first offending env key
func (o Options) Validate() error { return validate.Struct(o) }
