package notionsync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"canvassync/lib/scrapers/canvas/planner"
	"canvassync/lib/telemetry"
	"canvassync/lib/timezone"

	"github.com/jomei/notionapi"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("canvassync.services.notionsync")

// property names the target database is expected to carry
const (
	propTitle       = "Name"
	propDueDate     = "Due Date"
	propTags        = "Tags"
	propDescription = "Description"
	propStatus      = "Status"
	propPriority    = "Priority"
)

// the portal renders due times 7 hours ahead of the stored instant, so the
// written value compensates after parsing.
const displayOffset = 7 * time.Hour

const schoolTag = "School"

type databaseAPI interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

type pageAPI interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

type Stats struct {
	Creates int
	Updates int
	Skips   int
	Errors  int
}

// Run reconciles the collected items against a Notion database, skipping
// cleanly when the integration is not configured.
func Run(ctx context.Context, apiKey, databaseId string, items []planner.Item) Stats {
	if apiKey == "" {
		slog.InfoContext(ctx, "no notion api key provided, skipping database sync")
		return Stats{}
	}
	if databaseId == "" {
		slog.InfoContext(ctx, "no notion database id provided, skipping database sync")
		return Stats{}
	}

	client := notionapi.NewClient(notionapi.Token(apiKey))
	stats, err := Sync(ctx, client.Database, client.Page, databaseId, items)
	if err != nil {
		slog.ErrorContext(ctx, "database sync failed", "err", err)
	}
	return stats
}

// Sync brings the database in line with the collected items. Pages are
// matched by title only, so a page whose other properties drifted still gets
// overwritten on the next run. Failures on one item do not stop the rest.
func Sync(ctx context.Context, db databaseAPI, pages pageAPI, databaseId string, items []planner.Item) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()

	var stats Stats
	defer func() {
		slog.InfoContext(ctx, "database sync finished",
			"creates", stats.Creates,
			"updates", stats.Updates,
			"skips", stats.Skips,
			"errors", stats.Errors,
		)
	}()

	existing, err := queryUpcoming(ctx, db, notionapi.DatabaseID(databaseId))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return stats, fmt.Errorf("query database: %w", err)
	}

	byTitle := map[string]notionapi.ObjectID{}
	for _, page := range existing {
		title := firstTitleText(page.Properties)
		if title == "" {
			continue
		}
		byTitle[title] = page.ID
	}

	for _, item := range items {
		err := syncItem(ctx, pages, notionapi.DatabaseID(databaseId), byTitle, item, &stats)
		if err != nil {
			stats.Errors++
			slog.ErrorContext(ctx, "failed to sync item to database",
				"title", item.Title,
				"err", err,
			)
		}
	}

	return stats, nil
}

// queryUpcoming pages through every entry due within the next year. The
// window keeps long-dead pages from being rematched and rewritten.
func queryUpcoming(ctx context.Context, db databaseAPI, databaseId notionapi.DatabaseID) ([]notionapi.Page, error) {
	now := timezone.Now()
	after := notionapi.Date(now)
	before := notionapi.Date(now.AddDate(1, 0, 0))

	var results []notionapi.Page
	var cursor notionapi.Cursor
	for {
		res, err := db.Query(ctx, databaseId, &notionapi.DatabaseQueryRequest{
			Filter: notionapi.AndCompoundFilter{
				notionapi.PropertyFilter{
					Property: propDueDate,
					Date: &notionapi.DateFilterCondition{
						OnOrAfter: &after,
					},
				},
				notionapi.PropertyFilter{
					Property: propDueDate,
					Date: &notionapi.DateFilterCondition{
						OnOrBefore: &before,
					},
				},
			},
			StartCursor: cursor,
		})
		if err != nil {
			return nil, err
		}
		results = append(results, res.Results...)
		if !res.HasMore {
			return results, nil
		}
		cursor = res.NextCursor
	}
}

func syncItem(
	ctx context.Context,
	pages pageAPI,
	databaseId notionapi.DatabaseID,
	byTitle map[string]notionapi.ObjectID,
	item planner.Item,
	stats *Stats,
) error {
	due, err := ParseDueText(item.DueDate.Text, timezone.Now())
	if err != nil {
		slog.WarnContext(ctx, "could not parse due text, falling back to the current time",
			"title", item.Title,
			"text", item.DueDate.Text,
		)
		due = timezone.Now()
	}
	due = due.Add(-displayOffset)

	props := itemProperties(item, due)

	if pageId, ok := byTitle[item.Title]; ok {
		_, err := pages.Update(ctx, notionapi.PageID(pageId), &notionapi.PageUpdateRequest{
			Properties: props,
		})
		if err != nil {
			return fmt.Errorf("update page: %w", err)
		}
		stats.Updates++
		return nil
	}

	props[propStatus] = notionapi.SelectProperty{
		Select: notionapi.Option{Name: "Not started"},
	}
	props[propPriority] = notionapi.NumberProperty{Number: 1}

	_, err = pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: databaseId,
		},
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	stats.Creates++
	return nil
}

// itemProperties builds the properties shared by create and update. Status
// and priority are deliberately absent so user edits survive updates.
func itemProperties(item planner.Item, due time.Time) notionapi.Properties {
	start := notionapi.Date(due)
	description := ""
	if item.Description != nil {
		description = *item.Description
	}

	return notionapi.Properties{
		propTitle: notionapi.TitleProperty{
			Title: richText(item.Title),
		},
		propDueDate: notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &start},
		},
		propTags: notionapi.MultiSelectProperty{
			MultiSelect: []notionapi.Option{
				{Name: schoolTag},
				{Name: item.ClassName},
			},
		},
		propDescription: notionapi.RichTextProperty{
			RichText: richText(description),
		},
	}
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: content},
		},
	}
}

func firstTitleText(props notionapi.Properties) string {
	prop, ok := props[propTitle]
	if !ok {
		return ""
	}

	var runs []notionapi.RichText
	switch title := prop.(type) {
	case *notionapi.TitleProperty:
		runs = title.Title
	case notionapi.TitleProperty:
		runs = title.Title
	default:
		return ""
	}

	if len(runs) == 0 {
		return ""
	}
	if runs[0].PlainText != "" {
		return runs[0].PlainText
	}
	if runs[0].Text != nil {
		return runs[0].Text.Content
	}
	return ""
}
