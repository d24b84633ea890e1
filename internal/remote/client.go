package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	fclient "github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/session"
)

const (
	tracerName      = "github.com/Alijeyrad/glycare/internal/remote"
	apiPrefix       = "/api/v1"
	headerRequestID = "X-Request-Id"
)

// Client talks to the records API on behalf of one session.
type Client struct {
	http    *fclient.Client
	session session.Session
	logger  *slog.Logger
	tracer  trace.Tracer
}

func New(cfg Config, s session.Session, logger *slog.Logger) (*Client, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: remote base url is empty", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	hc := fclient.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout())
	hc.SetHeader(session.HeaderRole, string(s.Role))
	hc.SetHeader(session.HeaderActorID, s.ActorID.String())
	if cfg.UserAgent != "" {
		hc.SetUserAgent(cfg.UserAgent)
	}

	return &Client{
		http:    hc,
		session: s,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
	}, nil
}

func (c *Client) Session() session.Session { return c.session }

func (c *Client) Patients() *PatientDirectory { return &PatientDirectory{c: c} }

func (c *Client) BloodSugar() *Resource[domain.BloodSugarMeasurement] {
	return NewResource(c, domain.BloodSugar)
}

func (c *Client) Insulin() *Resource[domain.InsulinLogEntry] {
	return NewResource(c, domain.Insulin)
}

func (c *Client) Exercise() *Resource[domain.PlanAssignment] {
	return NewResource(c, domain.Exercise)
}

func (c *Client) Diet() *Resource[domain.PlanAssignment] {
	return NewResource(c, domain.Diet)
}

func (c *Client) Symptoms() *Resource[domain.SymptomReport] {
	return NewResource(c, domain.Symptom)
}

// do performs one request and decodes the {"data": ...} envelope into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", path),
		),
	)
	defer span.End()

	rid := uuid.NewString()
	headers := map[string]string{headerRequestID: rid}
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	cfg := fclient.Config{Ctx: ctx, Header: headers}
	if body != nil {
		cfg.Body = body
	}

	var (
		resp *fclient.Response
		err  error
	)
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(path, cfg)
	case http.MethodPost:
		resp, err = c.http.Post(path, cfg)
	case http.MethodPut:
		resp, err = c.http.Put(path, cfg)
	case http.MethodDelete:
		resp, err = c.http.Delete(path, cfg)
	default:
		return fmt.Errorf("remote: unsupported method %s", method)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		c.logger.Warn("remote call failed", "method", method, "path", path, "request_id", rid, "error", err)
		return fmt.Errorf("%w: %s %s: %v", domain.ErrNetwork, method, path, err)
	}
	defer resp.Close()

	status := resp.StatusCode()
	span.SetAttributes(attribute.Int("http.status_code", status))
	if err := statusError(method, path, status, resp.Body()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("remote call rejected", "method", method, "path", path, "request_id", rid, "status", status)
		return err
	}

	if out == nil {
		return nil
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%w: %s %s: decode envelope: %v", domain.ErrNetwork, method, path, err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s %s: decode data: %v", domain.ErrNetwork, method, path, err)
	}
	return nil
}
