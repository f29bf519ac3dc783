package athlinks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// GetEventMetadata fetches the metadata (name, start time, master id) of a
// specific event. Failures degrade to a zero value with a logged warning:
// rows flattened without metadata simply carry empty event fields.
func (c *Client) GetEventMetadata(ctx context.Context, eventID string) EventMetadata {
	ctx, span := tracer.Start(ctx, "GetEventMetadata")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/event/%s/metadata", eventID))
	if err != nil {
		slog.WarnContext(ctx, "could not fetch event metadata", "event_id", eventID, "err", err)
		return EventMetadata{}
	}
	if res.IsError() {
		slog.WarnContext(ctx, "could not fetch event metadata", "event_id", eventID, "status", res.Status())
		return EventMetadata{}
	}

	var meta EventMetadata
	err = json.Unmarshal(res.Body(), &meta)
	if err != nil {
		slog.WarnContext(ctx, "could not decode event metadata", "event_id", eventID, "err", err)
		return EventMetadata{}
	}
	return meta
}

// ListChildEvents returns the single-year events grouped under a master
// event, newest first. Events without a start epoch sort last and carry the
// date "Unknown". Failures degrade to an empty list with a logged warning,
// there is no partial state worth salvaging here.
func (c *Client) ListChildEvents(ctx context.Context, masterID string) []EventSummary {
	ctx, span := tracer.Start(ctx, "ListChildEvents")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/master/%s/metadata", masterID))
	if err != nil {
		slog.WarnContext(ctx, "could not fetch master metadata", "master_id", masterID, "err", err)
		return nil
	}
	if res.IsError() {
		slog.WarnContext(ctx, "could not fetch master metadata", "master_id", masterID, "status", res.Status())
		return nil
	}

	var meta masterMetadata
	err = json.Unmarshal(res.Body(), &meta)
	if err != nil {
		slog.WarnContext(ctx, "could not decode master metadata", "master_id", masterID, "err", err)
		return nil
	}

	events := make([]EventSummary, 0, len(meta.Events))
	for _, e := range meta.Events {
		summary := EventSummary{
			ID:   e.ID,
			Name: e.Name,
			Date: "Unknown",
		}
		if e.Start != nil && e.Start.Epoch != nil {
			summary.Epoch = *e.Start.Epoch
			summary.Date = formatEpochDate(*e.Start.Epoch)
		}
		events = append(events, summary)
	}

	slices.SortFunc(events, func(a, b EventSummary) int {
		if a.Epoch > b.Epoch {
			return -1
		}
		if a.Epoch < b.Epoch {
			return 1
		}
		return 0
	})

	return events
}

func formatEpochDate(epochMillis int64) string {
	return time.UnixMilli(epochMillis).UTC().Format("2006-01-02")
}
