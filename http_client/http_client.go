// Package httpclient sends signed JSON requests to the payment gateway and
// maps HTTP and JSON outcomes to results or classified errors.
//
// An HttpClient is safe for concurrent use. Every call is signed with a
// fresh nonce and no call is ever retried.
package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	fastshot "github.com/opus-domini/fast-shot"
	"github.com/opus-domini/fast-shot/constant/header"
	"github.com/opus-domini/fast-shot/constant/mime"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/klogs-hub/klogs-pgw-go/client"
	"github.com/klogs-hub/klogs-pgw-go/signer"
)

type Config struct {
	BaseURL   string
	APIKey    string
	SecretKey string
	// AdditionalHeaders are sent with every request and win over the
	// authentication headers on a key collision.
	AdditionalHeaders map[string]string
	// Timeout bounds a whole call. Zero means no timeout.
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport      http.RoundTripper
	Logger         *zap.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

type HttpClient struct {
	client  fastshot.ClientHttpMethods
	baseUrl string
	signer  *signer.Signer
	headers map[string]string
	log     *zap.Logger
	tracer  trace.Tracer
	metrics *metrics
}

func NewHttpClient(config Config) *HttpClient {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := config.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	baseUrl := strings.TrimRight(config.BaseURL, "/")

	builder := fastshot.NewClient(baseUrl).
		Config().SetCustomTransport(otelhttp.NewTransport(transport,
			otelhttp.WithTracerProvider(tp),
			otelhttp.WithMeterProvider(mp),
		)).
		Header().AddAccept(mime.JSON)
	if config.Timeout > 0 {
		builder = builder.Config().SetTimeout(config.Timeout)
	}

	headers := make(map[string]string, len(config.AdditionalHeaders))
	for k, v := range config.AdditionalHeaders {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	return &HttpClient{
		client:  builder.Build(),
		baseUrl: baseUrl,
		signer:  signer.New(config.APIKey, config.SecretKey),
		headers: headers,
		log:     log,
		tracer:  tp.Tracer(instrumentationName),
		metrics: newMetrics(mp, log),
	}
}

// BuildUrl joins the base URL and a resource path.
func (c *HttpClient) BuildUrl(path string) string {
	return c.baseUrl + normalizePath(path)
}

// Headers returns the header set for one request: fresh authentication
// headers overlaid with the additional headers.
func (c *HttpClient) Headers() map[string]string {
	headers := c.signer.Headers()
	for k, v := range c.headers {
		headers[k] = v
	}
	return headers
}

// Get decodes the response into out. Passing a *any yields the raw parsed
// JSON; a nil out discards the body after validation.
func (c *HttpClient) Get(ctx context.Context, path string, params map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

// Post sends body as JSON unless it is nil.
func (c *HttpClient) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *HttpClient) Put(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *HttpClient) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *HttpClient) do(ctx context.Context, method string, path string, params map[string]string, body any, out any) error {
	path = normalizePath(path)
	log := c.log.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("method", method),
		zap.String("url", c.BuildUrl(path)),
	)

	ctx, span := c.tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "encode request")
			return ErrRequest.Wrap(err)
		}
	}

	req := c.request(method, path).Context().Set(ctx)
	for k, v := range c.Headers() {
		req = req.Header().Set(header.Type(k), v)
	}
	if len(params) > 0 {
		req = req.Query().AddParams(params)
	}
	if payload != nil {
		req = req.Body().AsString(string(payload))
	}

	log.Debug("sending request", zap.Int("body_bytes", len(payload)), zap.Int("query_params", len(params)))

	start := time.Now()
	fastResp, err := req.Send()
	if err != nil {
		c.finish(ctx, span, method, path, outcomeTransport, 0, time.Since(start), err)
		log.Error("request failed", zap.Error(err))
		return ErrTransport.Wrap(err)
	}
	status := fastResp.Status().Code()
	text, err := fastResp.Body().AsString()
	if err != nil {
		c.finish(ctx, span, method, path, outcomeTransport, status, time.Since(start), err)
		log.Error("failed to read response body", zap.Int("status", status), zap.Error(err))
		return ErrTransport.Wrap(err)
	}
	elapsed := time.Since(start)

	outcome, err := handleResponse(status, text, out)
	c.finish(ctx, span, method, path, outcome, status, elapsed, err)
	switch outcome {
	case outcomeSuccess:
		log.Debug("received response", zap.Int("status", status), zap.Duration("elapsed", elapsed))
	case outcomeAPIError:
		log.Warn("gateway returned an error", zap.Int("status", status), zap.Error(err))
	default:
		log.Error("malformed response", zap.Int("status", status), zap.Int("body_bytes", len(text)))
	}
	return err
}

func (c *HttpClient) request(method string, path string) *fastshot.RequestBuilder {
	switch method {
	case http.MethodPost:
		return c.client.POST(path)
	case http.MethodPut:
		return c.client.PUT(path)
	case http.MethodDelete:
		return c.client.DELETE(path)
	default:
		return c.client.GET(path)
	}
}

func (c *HttpClient) finish(ctx context.Context, span trace.Span, method, path, outcome string, status int, elapsed time.Duration, err error) {
	c.metrics.record(ctx, method, path, outcome, status, elapsed)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
}

// handleResponse validates the body first, then the status code, then
// decodes into out.
func handleResponse(status int, text string, out any) (string, error) {
	if !json.Valid([]byte(text)) {
		return outcomeMalformed, ErrMalformedResponse.Wrap(&MalformedResponseError{StatusCode: status, Body: text})
	}
	if !IsSuccessStatusCode(status) {
		return outcomeAPIError, ErrAPI.Wrap(&APIError{StatusCode: status, Summary: errorSummary(text)})
	}
	if out == nil {
		return outcomeSuccess, nil
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return outcomeMalformed, ErrMalformedResponse.Wrap(&MalformedResponseError{StatusCode: status, Body: text, Err: err})
	}
	return outcomeSuccess, nil
}

func errorSummary(text string) string {
	var response client.Response
	if err := json.Unmarshal([]byte(text), &response); err != nil {
		return client.UnknownErrorSummary
	}
	if response.Error == nil || response.Error.Summary == "" {
		return client.UnknownErrorSummary
	}
	return response.Error.Summary
}

func IsSuccessStatusCode(status int) bool {
	return status >= 200 && status <= 299
}

func normalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}
