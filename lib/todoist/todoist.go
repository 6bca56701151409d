// Package todoist is a minimal client for the Todoist REST v2 api, covering
// only the surface the sync engine needs: listing tasks and projects,
// creating tasks and updating them in place.
package todoist

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"

	"canvassync/lib/restyutil"
	"canvassync/lib/telemetry"
)

var tracer = telemetry.Tracer("canvassync.lib.todoist")
var restyInstrumentOutput restyutil.InstrumentOutput

func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

const defaultBaseUrl = "https://api.todoist.com/rest/v2"

type Due struct {
	String string `json:"string"`
	Date   string `json:"date"`
}

type Task struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	ProjectID   string `json:"project_id"`
	Priority    int    `json:"priority"`
	Due         *Due   `json:"due"`
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateTaskParams struct {
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	ProjectID   string `json:"project_id,omitempty"`
	DueString   string `json:"due_string,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

type UpdateTaskParams struct {
	Description string `json:"description,omitempty"`
}

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	Token string
	// BaseUrl may be left empty to use the public api endpoint.
	BaseUrl string
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetAuthToken(opts.Token)
	client.SetTimeout(time.Second * 30)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client}
}

func assertOk(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("unexpected status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}

func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	ctx, span := tracer.Start(ctx, "client:Tasks")
	defer span.End()

	var tasks []Task
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&tasks).
		Get("/tasks")
	if err := assertOk(res, err); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list tasks")
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	ctx, span := tracer.Start(ctx, "client:Projects")
	defer span.End()

	var projects []Project
	res, err := c.http.R().
		SetContext(ctx).
		SetResult(&projects).
		Get("/projects")
	if err := assertOk(res, err); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list projects")
		return nil, err
	}
	return projects, nil
}

func (c *Client) CreateTask(ctx context.Context, params CreateTaskParams) (Task, error) {
	ctx, span := tracer.Start(ctx, "client:CreateTask")
	defer span.End()

	var task Task
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(params).
		SetResult(&task).
		Post("/tasks")
	if err := assertOk(res, err); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create task")
		return Task{}, err
	}
	return task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, params UpdateTaskParams) error {
	ctx, span := tracer.Start(ctx, "client:UpdateTask")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(params).
		Post(fmt.Sprintf("/tasks/%s", id))
	if err := assertOk(res, err); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to update task")
		return err
	}
	return nil
}
