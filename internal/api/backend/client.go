package backend

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
	"time"

	"github.com/omarshaarawi/gridiron/internal/config"
)

const maxBody = 50 << 20

// StatusError is a non-2xx reply. Detail carries the backend's "detail"
// field when it sent one.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the local chat and document backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg config.Backend) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.URL, "/"),
	}
}

func (c *Client) CreateSession(ctx context.Context) (Session, error) {
	var s Session
	if err := c.doJSON(ctx, http.MethodPost, "/chat/new-session", nil, &s); err != nil {
		return Session{}, fmt.Errorf("creating chat session: %w", err)
	}
	return s, nil
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var resp ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat", req, &resp); err != nil {
		return ChatResponse{}, fmt.Errorf("sending chat message: %w", err)
	}
	return resp, nil
}

func (c *Client) ChatHistory(ctx context.Context, sessionID string) (ChatHistory, error) {
	var h ChatHistory
	if err := c.doJSON(ctx, http.MethodGet, "/chat-history/"+url.PathEscape(sessionID), nil, &h); err != nil {
		return ChatHistory{}, fmt.Errorf("fetching chat history: %w", err)
	}
	return h, nil
}

func (c *Client) ClearChat(ctx context.Context, sessionID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/chat/"+url.PathEscape(sessionID), nil, nil); err != nil {
		return fmt.Errorf("clearing chat session: %w", err)
	}
	return nil
}

func (c *Client) AskExpert(ctx context.Context, question string) (ExpertAnswer, error) {
	var a ExpertAnswer
	body := map[string]string{"question": question}
	if err := c.doJSON(ctx, http.MethodPost, "/ask-nfl-expert", body, &a); err != nil {
		return ExpertAnswer{}, fmt.Errorf("asking expert: %w", err)
	}
	return a, nil
}

// UploadPDF sends the document as the multipart "file" field.
func (c *Client) UploadPDF(ctx context.Context, filename string, r io.Reader) (UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("copying pdf: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-pdf", &buf)
	if err != nil {
		return UploadResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	data, err := c.do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("uploading pdf: %w", err)
	}
	var res UploadResult
	if err := json.Unmarshal(data, &res); err != nil {
		return UploadResult{}, fmt.Errorf("decoding upload response: %w", err)
	}
	return res, nil
}

func (c *Client) ExtractPDFText(ctx context.Context, fileID string, page int) (PageText, error) {
	var pt PageText
	if err := c.doJSON(ctx, http.MethodPost, "/extract-pdf-text", pageRequest{FileID: fileID, Page: page}, &pt); err != nil {
		return PageText{}, fmt.Errorf("extracting pdf text: %w", err)
	}
	return pt, nil
}

// PDFPage returns the page rendered as PNG.
func (c *Client) PDFPage(ctx context.Context, fileID string, page int) ([]byte, error) {
	data, err := c.raw(ctx, "/pdf-page/"+url.PathEscape(fileID)+"/"+strconv.Itoa(page))
	if err != nil {
		return nil, fmt.Errorf("fetching pdf page: %w", err)
	}
	return data, nil
}

func (c *Client) UpdatePDFText(ctx context.Context, fileID string, page int, blocks []TextBlock) (UpdateResult, error) {
	var res UpdateResult
	body := pageRequest{FileID: fileID, Page: page, TextBlocks: blocks}
	if err := c.doJSON(ctx, http.MethodPost, "/update-pdf-text", body, &res); err != nil {
		return UpdateResult{}, fmt.Errorf("updating pdf text: %w", err)
	}
	return res, nil
}

// DownloadTextPDF returns the edited document, or the original when no
// edits were saved.
func (c *Client) DownloadTextPDF(ctx context.Context, fileID string) ([]byte, error) {
	data, err := c.raw(ctx, "/download-text-pdf/"+url.PathEscape(fileID))
	if err != nil {
		return nil, fmt.Errorf("downloading pdf: %w", err)
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, result interface{}) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	data, err := c.do(req)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.Unmarshal(data, &e)
		return nil, &StatusError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}
	return data, nil
}
