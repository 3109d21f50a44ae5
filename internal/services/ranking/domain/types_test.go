package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDeclaredCount_DecodeAndResolve(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
	}{
		{"string", `{"illust_page_count":"3"}`, 3},
		{"number", `{"illust_page_count":4}`, 4},
		{"null", `{"illust_page_count":null}`, 1},
		{"absent", `{}`, 1},
		{"garbage", `{"illust_page_count":"many"}`, 1},
		{"zero", `{"illust_page_count":"0"}`, 1},
		{"padded", `{"illust_page_count":" 2 "}`, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var it RawItem
			if err := json.Unmarshal([]byte(c.body), &it); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := it.ResolvedPages(); got != c.want {
				t.Fatalf("ResolvedPages = %d, want %d", got, c.want)
			}
		})
	}
}

func TestFeedPage_Decode(t *testing.T) {
	body := `{"contents":[{"title":"a","illust_id":12345678901,"url":"u",
		"illust_page_count":"2","illust_content_type":{"bl":false,"furry":true,"antisocial":false,"drug":false}}]}`
	var p FeedPage
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(p.Contents) != 1 {
		t.Fatalf("contents = %d", len(p.Contents))
	}
	it := p.Contents[0]
	if it.IllustID != 12345678901 || it.Title != "a" || !it.ContentType.Furry || !it.ContentType.Any() {
		t.Fatalf("decoded item mismatch: %+v", it)
	}
}

func TestWorkItem_Names(t *testing.T) {
	w := WorkItem{OriginPrefix: "https://i.pximg.net/img-original/img/2024/01/02/03/04/05/111_", ID: 111, Pages: 2}
	if got := w.PageURL(1, ExtPrimary); got != "https://i.pximg.net/img-original/img/2024/01/02/03/04/05/111_p1.jpg" {
		t.Fatalf("PageURL = %q", got)
	}
	if got := w.FileName(0, ExtFallback); got != "111_p0.png" {
		t.Fatalf("FileName = %q", got)
	}
}

func TestDay_TruncatesToLocalDate(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	in := time.Date(2024, 3, 1, 23, 59, 1, 5, loc)
	got := Day(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Day() != 1 || got.Location() != loc {
		t.Fatalf("Day = %v", got)
	}
	if got.Format(DayLayout) != "20240301" {
		t.Fatalf("format = %s", got.Format(DayLayout))
	}
}

func TestOutcome_String(t *testing.T) {
	if OutcomeSaved.String() != "saved" || OutcomeNotFound.String() != "not_found" ||
		OutcomeSkipped.String() != "skipped" || Outcome(0).String() != "unknown" {
		t.Fatalf("outcome labels mismatch")
	}
}
