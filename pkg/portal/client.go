package portal

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/mastertom/saltofi/pkg/observation"
)

// blockFileName is the entry name the portal expects inside the proposal ZIP.
const blockFileName = "Block.xml"

// Credentials authenticate against the Web Manager. The portal wants both
// values base64-encoded in the form body; Client takes care of that.
type Credentials struct {
	Username string
	Password string
}

// Option configures a portal client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for submissions.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			cloned := *client
			c.httpClient = &cloned
		}
	}
}

// WithRequestTimeout bounds each submission request. Zero disables the bound
// and defers to the caller's context.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// Client submits proposal blocks to the SALT Web Manager.
type Client struct {
	endpoint       string
	creds          Credentials
	httpClient     *http.Client
	requestTimeout time.Duration
}

// NewClient builds a portal client for the given submission endpoint.
func NewClient(endpoint string, creds Credentials, options ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("portal: endpoint is required")
	}
	client := &Client{
		endpoint:   endpoint,
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(client)
	}
	return client, nil
}

// Submit sends the rendered block to the portal and returns the block code
// the caller can use to track the observation. The portal answers with an
// XML document; an <Error> root means the submission was rejected.
func (c *Client) Submit(ctx context.Context, payload observation.Payload) (string, error) {
	if len(payload.XML) == 0 {
		return "", errors.New("portal: payload has no block document")
	}
	if payload.ProposalCode == "" {
		return "", errors.New("portal: payload has no proposal code")
	}

	archive, err := proposalZIP(payload.XML)
	if err != nil {
		return "", fmt.Errorf("portal: build proposal archive: %w", err)
	}

	contentType, body, err := c.encodeSubmission(payload, archive)
	if err != nil {
		return "", fmt.Errorf("portal: encode submission: %w", err)
	}

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("portal: create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("portal: submit block: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("portal: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("portal: unexpected status %d from %s", resp.StatusCode, c.endpoint)
	}

	if err := checkResponse(responseBody); err != nil {
		return "", err
	}
	return payload.BlockCode, nil
}

// encodeSubmission builds the multipart form body: the sendProposal call
// parameters plus the proposal ZIP as a file part.
func (c *Client) encodeSubmission(payload observation.Payload, archive []byte) (string, []byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username":             base64.StdEncoding.EncodeToString([]byte(c.creds.Username)),
		"password":             base64.StdEncoding.EncodeToString([]byte(c.creds.Password)),
		"method":               "sendProposal",
		"asyncCode":            "",
		"proposalCode":         payload.ProposalCode,
		"emails":               "false",
		"retainProposalStatus": "false",
		"semester":             payload.Semester.String(),
		"noValidation":         "false",
		"blocksOnly":           "true",
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return "", nil, err
		}
	}

	fileName := fmt.Sprintf("file_%s.zip", payload.BlockCode)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="proposal"; filename="%s"`, fileName))
	header.Set("Content-Type", "application/zip")

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write(archive); err != nil {
		return "", nil, err
	}

	if err := writer.Close(); err != nil {
		return "", nil, err
	}
	return writer.FormDataContentType(), buf.Bytes(), nil
}

// proposalZIP wraps the block document in an in-memory ZIP archive under the
// entry name the portal's importer looks for.
func proposalZIP(blockXML []byte) ([]byte, error) {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	entry, err := archive.Create(blockFileName)
	if err != nil {
		return nil, err
	}
	if _, err := entry.Write(blockXML); err != nil {
		return nil, err
	}
	if err := archive.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
