// Package collector walks the portal's aggregated planner view and turns
// every discovered coursework link into a typed item record. Failures are
// contained per item: one broken page never aborts the batch.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"canvassync/lib/htmlutil"
	"canvassync/lib/scrapers/canvas/core"
	"canvassync/lib/scrapers/canvas/planner"
	"canvassync/lib/telemetry"
)

var tracer = telemetry.Tracer("canvassync.services.collector")

const plannerEndpoint = "/?view=planner"

const (
	plannerTimeout = time.Second * 30
	itemTimeout    = time.Second * 30
)

// Stats accumulates the aggregate counters for one collection run. It is
// owned by the single collecting flow and handed around explicitly.
type Stats struct {
	Discovered  int
	Processed   int
	Assignments int
	Quizzes     int
	Discussions int
	Skipped     int
	Errors      int
}

type Collector struct {
	client *core.Client
}

// New wraps an already authenticated portal client.
func New(client *core.Client) Collector {
	return Collector{client: client}
}

// Collect discovers every planner item and extracts it in discovery order.
// An unreachable planner view is fatal; anything that goes wrong with a
// single item is logged, counted and skipped.
func (c Collector) Collect(ctx context.Context) ([]planner.Item, Stats, error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	stats := Stats{}
	defer func() {
		slog.InfoContext(
			ctx, "collection finished",
			"discovered", stats.Discovered,
			"processed", stats.Processed,
			"assignments", stats.Assignments,
			"quizzes", stats.Quizzes,
			"discussions", stats.Discussions,
			"skipped", stats.Skipped,
			"errors", stats.Errors,
		)
	}()

	plannerCtx, cancel := context.WithTimeout(ctx, plannerTimeout)
	defer cancel()
	doc, err := c.client.Document(plannerCtx, plannerEndpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch planner view")
		return nil, stats, err
	}
	sel := c.client.Selectors
	if doc.Find(sel.Navigation.PlannerButton).Length() == 0 {
		err := fmt.Errorf("planner marker '%s' not found", sel.Navigation.PlannerButton)
		span.RecordError(err)
		span.SetStatus(codes.Error, "planner view did not render")
		return nil, stats, err
	}

	links := htmlutil.GetAnchors(ctx, doc.Find(sel.Planner.Items))
	stats.Discovered = len(links)
	if len(links) == 0 {
		// legitimately happens when there is no outstanding work
		slog.InfoContext(ctx, "no planner items discovered")
		return nil, stats, nil
	}

	var items []planner.Item
	for i, link := range links {
		item, err := c.collectItem(ctx, i, link)
		if err != nil {
			stats.Errors++
			slog.ErrorContext(
				ctx, "failed to process planner item",
				"index", i,
				"name", link.Name,
				"url", link.Href,
				"err", err,
			)
			continue
		}
		if item.Kind == planner.KindUnknown {
			stats.Skipped++
			slog.WarnContext(
				ctx, "unrecognized content type, skipping",
				"index", i,
				"name", link.Name,
				"url", link.Href,
			)
			continue
		}

		switch item.Kind {
		case planner.KindAssignment:
			stats.Assignments++
		case planner.KindQuiz:
			stats.Quizzes++
		case planner.KindDiscussion:
			stats.Discussions++
		}
		stats.Processed++
		items = append(items, item)
	}

	return items, stats, nil
}

// collectItem loads one detail page in its own bounded context, classifies
// it and dispatches to the matching extractor. A zero Kind on the returned
// item means the page matched no known content type.
func (c Collector) collectItem(ctx context.Context, index int, link htmlutil.Anchor) (planner.Item, error) {
	ctx, span := tracer.Start(ctx, "collectItem")
	defer span.End()

	itemCtx, cancel := context.WithTimeout(ctx, itemTimeout)
	defer cancel()

	sourceUrl, err := c.client.ResolveUrl(link.Href)
	if err != nil {
		return planner.Item{}, fmt.Errorf("failed to resolve item url: %w", err)
	}

	doc, err := c.client.Document(itemCtx, sourceUrl)
	if err != nil {
		return planner.Item{}, err
	}

	sel := c.client.Selectors
	if doc.Find(sel.Content.Main).Length() == 0 {
		return planner.Item{}, fmt.Errorf("content container '%s' never appeared", sel.Content.Main)
	}

	className := planner.BreadcrumbClassName(doc, sel)
	kind := planner.Classify(doc, sel)
	if kind == planner.KindUnknown {
		return planner.Item{Kind: planner.KindUnknown}, nil
	}

	item, err := planner.Extract(kind, doc, sel)
	if err != nil {
		return planner.Item{}, err
	}
	item.ClassName = className
	item.SourceUrl = sourceUrl
	item.Kind = kind

	slog.DebugContext(
		ctx, "extracted item",
		"index", index,
		"kind", kind,
		"title", item.Title,
		"class", className,
	)
	return item, nil
}
