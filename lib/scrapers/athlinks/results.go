package athlinks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
)

// PageSize is how many participant records the API is asked for per page.
const PageSize = 100

// PageSource produces one page of course blocks at a given record offset.
// The production implementation is a *Client bound to an event id, tests
// inject fakes to exercise pagination termination without I/O.
type PageSource interface {
	FetchPage(ctx context.Context, from, limit int) ([]CourseBlock, error)
}

type resultPages struct {
	client  *Client
	eventID string
}

// Results returns the paginated result feed of a specific event.
func (c *Client) Results(eventID string) PageSource {
	return resultPages{client: c, eventID: eventID}
}

func (p resultPages) FetchPage(ctx context.Context, from, limit int) ([]CourseBlock, error) {
	res, err := p.client.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"correlationId": "",
			"from":          strconv.Itoa(from),
			"limit":         strconv.Itoa(limit),
		}).
		Get(fmt.Sprintf("/event/%s/results", p.eventID))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("results page at offset %d: %s", from, res.Status())
	}

	var blocks []CourseBlock
	err = json.Unmarshal(res.Body(), &blocks)
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// pageState is the pagination state machine: the next record offset plus
// everything accumulated so far. A page contributing zero participant
// records is the terminal state.
type pageState struct {
	from        int
	accumulated []CourseBlock
}

// FetchAllResults walks a page source until a page carries no participant
// records. On a fetch failure it returns whatever was accumulated before the
// failure together with the error, so callers can tell "no data" apart from
// "failed partway" and still keep the partial rows.
func FetchAllResults(ctx context.Context, src PageSource) ([]CourseBlock, error) {
	ctx, span := tracer.Start(ctx, "FetchAllResults")
	defer span.End()

	state := pageState{}
	for {
		page, err := src.FetchPage(ctx, state.from, PageSize)
		if err != nil {
			slog.ErrorContext(
				ctx, "results fetch failed, keeping partial data",
				"from", state.from,
				"err", err,
			)
			return state.accumulated, err
		}

		state.accumulated = append(state.accumulated, page...)

		batch := countResults(page)
		slog.DebugContext(ctx, "fetched results page", "from", state.from, "count", batch)
		if batch == 0 {
			return state.accumulated, nil
		}
		state.from += PageSize
	}
}

// FetchAllResults pulls every page of results for one event.
func (c *Client) FetchAllResults(ctx context.Context, eventID string) ([]CourseBlock, error) {
	return FetchAllResults(ctx, c.Results(eventID))
}

func countResults(blocks []CourseBlock) int {
	n := 0
	for _, course := range blocks {
		for _, interval := range course.Intervals {
			n += len(interval.Results)
		}
	}
	return n
}
