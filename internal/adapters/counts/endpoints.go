package counts

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"headcount/internal/core/classify"
	perr "headcount/internal/platform/errors"
)

// Counts fetches raw count events for q, following pagination until the
// upstream reports no next page
func (c *Client) Counts(ctx context.Context, q CountsQuery) ([]classify.RawCountEvent, error) {
	v := url.Values{}
	v.Set("start_time", q.StartTime)
	v.Set("end_time", q.EndTime)
	v.Set("interval", q.Interval.String())
	v.Set("space_list", joinIDs(q.SpaceIDs))
	v.Set("page_size", strconv.Itoa(c.opts.PageSize))
	next := "/spaces/counts?" + v.Encode()

	var out []classify.RawCountEvent
	for next != "" {
		page, err := c.countsPage(ctx, next)
		if err != nil {
			return nil, err
		}
		for idStr, buckets := range page.Results {
			space, err := uuid.Parse(idStr)
			if err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "counts bad space id %q in response", idStr)
			}
			for _, b := range buckets {
				out = append(out, b.toEvent(space))
			}
		}
		next = ""
		if page.Next != nil {
			next = *page.Next
		}
	}
	return out, nil
}

// MetricsSummary fetches one upstream metrics object per requested space
// The serialized time filter travels as the time_filters query parameter
func (c *Client) MetricsSummary(ctx context.Context, q SummaryQuery) (map[uuid.UUID]SpaceSummary, error) {
	v := url.Values{}
	v.Set("start_time", q.StartTime)
	v.Set("end_time", q.EndTime)
	v.Set("interval", q.Interval.String())
	v.Set("space_list", joinIDs(q.SpaceIDs))
	if q.TimeFilters != "" {
		v.Set("time_filters", q.TimeFilters)
	}

	resp, err := c.Do(ctx, "/spaces/metrics?"+v.Encode())
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("counts close body failed")
		}
	}()

	var page summaryPage
	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "counts read metrics body failed")
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "counts decode metrics failed")
	}

	out := make(map[uuid.UUID]SpaceSummary, len(page.Metrics))
	for idStr, sum := range page.Metrics {
		space, err := uuid.Parse(idStr)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "counts bad space id %q in response", idStr)
		}
		out[space] = sum
	}
	return out, nil
}

func (c *Client) countsPage(ctx context.Context, pageURL string) (countsPage, error) {
	resp, err := c.Do(ctx, pageURL)
	if err != nil {
		return countsPage{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Msg("counts close body failed")
		}
	}()

	var page countsPage
	b, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return countsPage{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "counts read body failed")
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return countsPage{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "counts decode page failed")
	}
	return page, nil
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}
