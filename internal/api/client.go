// Package api is the client for the remote document analysis service.
//
// Every operation makes a single attempt. The client applies no retries,
// timeouts or backoff; callers decide whether to re-trigger a failed call.
// All failures are returned as *RemoteError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/logging"
)

const (
	pathAnalyze   = "/analyze"
	pathAsk       = "/ask"
	pathTranslate = "/translate"
	pathAudio     = "/audio"
	pathCompare   = "/compare"
)

// Operation names carried on RemoteError.
const (
	OpAnalyze   = "analyze"
	OpAsk       = "ask"
	OpTranslate = "translate"
	OpAudio     = "audio"
	OpCompare   = "compare"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client // defaults to http.DefaultClient's transport
	Logger     zerolog.Logger
}

// Client calls the remote analysis service.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New creates a client for the service at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}

	var hc http.Client
	if opts.HTTPClient != nil {
		hc = *opts.HTTPClient
	}
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc.Transport = loggingTransport{next: next, log: opts.Logger}

	return &Client{
		base: base,
		http: &hc,
		log:  opts.Logger,
	}, nil
}

// BaseURL returns the service endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Answer is the response to a question.
type Answer struct {
	Answer string `json:"answer"`
}

type askRequest struct {
	Question string `json:"question"`
}

type translateRequest struct {
	Section    string `json:"section"`
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
}

type translateResponse struct {
	Translated string `json:"translated"`
}

type audioRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

// Analyze uploads a document and returns its analysis.
func (c *Client) Analyze(ctx context.Context, doc Document) (analysis.Result, error) {
	body, contentType, err := multipartBody(map[string]Document{"document": doc})
	if err != nil {
		return analysis.Result{}, c.fail(OpAnalyze, 0, err.Error())
	}

	data, err := c.send(ctx, OpAnalyze, pathAnalyze, contentType, body)
	if err != nil {
		return analysis.Result{}, err
	}

	var result analysis.Result
	if err := c.decode(OpAnalyze, data, &result); err != nil {
		return analysis.Result{}, err
	}
	result.Normalize()
	return result, nil
}

// Ask submits a free-text question about the most recently analyzed
// document.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	var ans Answer
	if err := c.postJSON(ctx, OpAsk, pathAsk, askRequest{Question: question}, &ans); err != nil {
		return Answer{}, err
	}
	return ans, nil
}

// Translate returns text translated into target.
func (c *Client) Translate(ctx context.Context, section, text string, target analysis.Lang) (string, error) {
	req := translateRequest{
		Section:    section,
		Text:       text,
		TargetLang: string(target),
	}

	var resp translateResponse
	if err := c.postJSON(ctx, OpTranslate, pathTranslate, req, &resp); err != nil {
		return "", err
	}
	return resp.Translated, nil
}

// SynthesizeAudio returns a playable audio payload for text spoken in lang.
func (c *Client) SynthesizeAudio(ctx context.Context, text string, lang analysis.Lang) ([]byte, error) {
	payload, err := json.Marshal(audioRequest{Text: text, Lang: string(lang)})
	if err != nil {
		return nil, c.fail(OpAudio, 0, err.Error())
	}

	data, err := c.send(ctx, OpAudio, pathAudio, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, c.fail(OpAudio, http.StatusOK, "Audio conversion returned no data")
	}
	return data, nil
}

// Compare uploads two versions of a document and returns their differences.
func (c *Client) Compare(ctx context.Context, oldDoc, newDoc Document) (analysis.Comparison, error) {
	body, contentType, err := multipartBody(map[string]Document{
		"old_document": oldDoc,
		"new_document": newDoc,
	})
	if err != nil {
		return analysis.Comparison{}, c.fail(OpCompare, 0, err.Error())
	}

	data, err := c.send(ctx, OpCompare, pathCompare, contentType, body)
	if err != nil {
		return analysis.Comparison{}, err
	}

	var cmp analysis.Comparison
	if err := c.decode(OpCompare, data, &cmp); err != nil {
		return analysis.Comparison{}, err
	}
	return cmp, nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return c.fail(op, 0, err.Error())
	}

	data, err := c.send(ctx, op, path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return c.decode(op, data, out)
}

// send performs one POST and returns the body of a 2xx response.
func (c *Client) send(ctx context.Context, op, path, contentType string, body io.Reader) ([]byte, error) {
	ctx = logging.WithRequestID(ctx, uuid.NewString())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return nil, c.fail(op, 0, err.Error())
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(op, 0, transportMessage(err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(op, resp.StatusCode, transportMessage(err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(op, resp.StatusCode, bodyMessage(data), statusMessage(resp.StatusCode))
	}
	return data, nil
}

func (c *Client) decode(op string, data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return c.fail(op, http.StatusOK, bodyMessage(data), fmt.Sprintf("Malformed response from server: %v", err))
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.base.JoinPath(path).String()
}

// fail builds the normalized error from the first non-empty message.
func (c *Client) fail(op string, status int, msgs ...string) error {
	err := &RemoteError{
		Op:      op,
		Status:  status,
		Message: firstNonEmpty(msgs...),
	}
	c.log.Error().Str("op", op).Int("status", status).Msg(err.Message)
	return err
}

// multipartBody encodes documents as multipart form fields.
func multipartBody(fields map[string]Document) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	// Field order is fixed so requests are reproducible.
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		doc := fields[name]
		if doc == nil {
			return nil, "", fmt.Errorf("no %s file provided", name)
		}
		if err := writePart(w, name, doc); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writePart(w *multipart.Writer, field string, doc Document) error {
	rc, err := doc.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", doc.Filename(), err)
	}
	defer func() { _ = rc.Close() }()

	part, err := w.CreateFormFile(field, doc.Filename())
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("read %s: %w", doc.Filename(), err)
	}
	return nil
}
