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
	"strconv"
	"strings"

	"github.com/google/uuid"

	"resourcehub/internal/client/models"
	"resourcehub/internal/common"
	"resourcehub/internal/logging"
)

// Backend endpoint paths.
const (
	pathLogin          = "/auth/login/"
	pathCurrentUser    = "/auth/me/"
	pathSearch         = "/resources/search"
	pathUploadSimple   = "/uploads/simple/"
	pathUploadInitiate = "/uploads/initiate/"
	pathCreateResource = "/uploads/resources/"
)

// HTTPClient is the concrete Client speaking the backend's REST dialect.
// It is stateless between calls: the token comes from the injected
// TokenProvider on every request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	log     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient swaps the underlying *http.Client, e.g. to set a transport
// timeout or to point tests at an httptest server client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// NewHTTPClient builds a gateway to the backend at baseURL. tokens may be
// nil for a purely anonymous client.
func NewHTTPClient(baseURL string, tokens TokenProvider, log logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs one request and returns the raw response body. Non-2xx
// responses become *HTTPError; a canceled context surfaces as the context's
// own error.
func (c *HTTPClient) do(ctx context.Context, method, p string, query url.Values, body io.Reader, contentType string, contentLength int64) ([]byte, error) {
	u := c.baseURL + p
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if contentLength > 0 {
		req.ContentLength = contentLength
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			c.log.Warn(ctx, "token lookup failed, sending anonymous request", "error", err)
		} else if token != "" {
			req.Header.Set(common.AuthHeaderName, common.AuthScheme+" "+token)
		}
	}

	c.log.Debug(ctx, "request", "method", method, "path", p)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{Status: resp.StatusCode, Detail: extractDetail(data)}
	}
	return data, nil
}

// extractDetail pulls the backend's "detail" message out of an error body.
func extractDetail(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Detail != "" {
		return body.Detail
	}
	return ""
}

func (c *HTTPClient) getRaw(ctx context.Context, p string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, p, query, nil, "", 0)
}

func (c *HTTPClient) getJSON(ctx context.Context, p string, query url.Values, out any) error {
	data, err := c.getRaw(ctx, p, query)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func (c *HTTPClient) postJSON(ctx context.Context, p string, in, out any) error {
	var body io.Reader
	var length int64
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
		length = int64(len(encoded))
	}
	data, err := c.do(ctx, http.MethodPost, p, nil, body, "application/json", length)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// postMultipart sends fields plus one file part. When progress is non-nil,
// events are emitted as the request body is consumed by the transport.
func (c *HTTPClient) postMultipart(ctx context.Context, p string, fields map[string]string, fileField, fileName string, file io.Reader, progress *progressReader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	part, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	length := int64(buf.Len())
	var body io.Reader = &buf
	if progress != nil {
		progress.r = &buf
		progress.total = length
		body = progress
	}

	data, err := c.do(ctx, http.MethodPost, p, nil, body, w.FormDataContentType(), length)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

// Login exchanges credentials for a token session.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	in := map[string]string{"email": email, "password": password}
	var session models.Session
	if err := c.postJSON(ctx, pathLogin, in, &session); err != nil {
		return nil, mapError(err)
	}
	return &session, nil
}

// CurrentUser fetches the authenticated user's profile.
func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, pathCurrentUser, nil, &user); err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// SearchResources runs one typeahead query. The backend may answer with a
// bare array or a results envelope; both decode to canonical results.
func (c *HTTPClient) SearchResources(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	data, err := c.getRaw(ctx, pathSearch, q)
	if err != nil {
		return nil, mapError(err)
	}
	results, err := models.DecodeSearchResponse(data)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// CreateResource publishes a resource referencing uploaded files.
func (c *HTTPClient) CreateResource(ctx context.Context, draft models.ResourceDraft) (*models.Resource, error) {
	var resource models.Resource
	if err := c.postJSON(ctx, pathCreateResource, draft, &resource); err != nil {
		return nil, mapError(err)
	}
	return &resource, nil
}

// UploadSimple sends the whole file as one multipart request.
func (c *HTTPClient) UploadSimple(ctx context.Context, filename, mimeType string, size int64, r io.Reader, progress models.ProgressFunc) (*models.FileDescriptor, error) {
	fields := map[string]string{
		"filename": filename,
		"mimeType": mimeType,
	}
	var fd models.FileDescriptor
	pr := newProgressReader("", size, -1, progress)
	if err := c.postMultipart(ctx, pathUploadSimple, fields, "file", filename, r, pr, &fd); err != nil {
		return nil, mapError(err)
	}
	return &fd, nil
}

// InitiateUpload opens a chunked session; any failure here aborts the whole
// upload (no retry).
func (c *HTTPClient) InitiateUpload(ctx context.Context, filename, mimeType string, size int64, chunkSize int64) (string, error) {
	in := map[string]any{
		"filename":  filename,
		"mimeType":  mimeType,
		"size":      size,
		"chunkSize": chunkSize,
	}
	var out struct {
		UploadID string `json:"uploadId"`
	}
	if err := c.postJSON(ctx, pathUploadInitiate, in, &out); err != nil {
		return "", mapError(err)
	}
	if out.UploadID == "" {
		return "", fmt.Errorf("initiate: response carried no uploadId")
	}
	return out.UploadID, nil
}

// UploadChunk sends one slice as multipart carrying the chunk, its index,
// and the total chunk count.
func (c *HTTPClient) UploadChunk(ctx context.Context, uploadID string, chunk io.Reader, size int64, index, totalChunks int, progress models.ProgressFunc) error {
	fields := map[string]string{
		"chunkIndex":  strconv.Itoa(index),
		"totalChunks": strconv.Itoa(totalChunks),
	}
	p := fmt.Sprintf("/uploads/%s/chunk", url.PathEscape(uploadID))
	pr := newProgressReader(uploadID, size, index, progress)
	if err := c.postMultipart(ctx, p, fields, "chunk", fmt.Sprintf("chunk-%05d", index), chunk, pr, nil); err != nil {
		return mapError(err)
	}
	return nil
}

// CompleteUpload finalizes the session.
func (c *HTTPClient) CompleteUpload(ctx context.Context, uploadID string) (*models.FileDescriptor, error) {
	p := fmt.Sprintf("/uploads/%s/complete/", url.PathEscape(uploadID))
	var fd models.FileDescriptor
	if err := c.postJSON(ctx, p, nil, &fd); err != nil {
		return nil, mapError(err)
	}
	return &fd, nil
}

var _ Client = (*HTTPClient)(nil)
