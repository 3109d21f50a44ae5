// Package domain holds the data shapes shared by the ranking download pipeline
package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the date format the ranking feed expects in its date parameter
const DayLayout = "20060102"

// ContentFlags is the policy flag bundle attached to every ranking entry
type ContentFlags struct {
	BL         bool `json:"bl"`
	Furry      bool `json:"furry"`
	Antisocial bool `json:"antisocial"`
	Drug       bool `json:"drug"`
}

// Any reports whether any policy flag is set
func (f ContentFlags) Any() bool { return f.BL || f.Furry || f.Antisocial || f.Drug }

// DeclaredCount is the page count as the feed declares it. The feed sends a
// string, but numbers and null are tolerated; the raw text is kept and only
// interpreted by Resolve
type DeclaredCount string

// UnmarshalJSON accepts a JSON string, number or null
func (d *DeclaredCount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = DeclaredCount(s)
		return nil
	}
	*d = DeclaredCount(b)
	return nil
}

// Resolve returns the page count, defaulting to 1 when absent, unparsable or below 1
func (d DeclaredCount) Resolve() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(d)))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// RawItem is one entry of a ranking feed page
type RawItem struct {
	Title       string        `json:"title"`
	IllustID    uint64        `json:"illust_id"`
	URL         string        `json:"url"`
	PageCount   DeclaredCount `json:"illust_page_count"`
	ContentType ContentFlags  `json:"illust_content_type"`
}

// ResolvedPages is the declared page count after defaulting
func (r RawItem) ResolvedPages() int { return r.PageCount.Resolve() }

// FeedPage is the JSON body of one ranking page
type FeedPage struct {
	Contents []RawItem `json:"contents"`
}

// WorkItem is an accepted ranking entry ready for download. It is passed by value
type WorkItem struct {
	// OriginPrefix is the origin asset URL up to and including the trailing "_"
	OriginPrefix string
	ID           uint64
	Title        string
	Pages        int
}

// Asset extensions tried by the downloader
const (
	ExtPrimary  = ".jpg"
	ExtFallback = ".png"
)

// PageURL returns the origin URL for page i with the given extension
func (w WorkItem) PageURL(i int, ext string) string {
	return w.OriginPrefix + "p" + strconv.Itoa(i) + ext
}

// FileName returns the storage name for page i, e.g. 1234_p0.jpg
func (w WorkItem) FileName(i int, ext string) string {
	return strconv.FormatUint(w.ID, 10) + "_p" + strconv.Itoa(i) + ext
}

// Aggregate maps identity to work item; a later insert for the same id replaces the earlier one
type Aggregate map[uint64]WorkItem

// Day truncates t to its local calendar date
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Outcome is how a single asset download ended
type Outcome uint8

const (
	// OutcomeSaved means the body was written to the sink
	OutcomeSaved Outcome = iota + 1
	// OutcomeNotFound means both representations returned 404
	OutcomeNotFound
	// OutcomeSkipped means a status other than 200 or 404 was returned
	OutcomeSkipped
)

// String returns a short label used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result describes a finished asset download
type Result struct {
	Outcome Outcome
	URL     string // URL of the last attempt
	Name    string // storage name of the last attempt
	Status  int
	Bytes   int64
}

// Summary counts what a run did
type Summary struct {
	Items    int
	Saved    int64
	NotFound int64
	Skipped  int64
	Retries  int64
}
