package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/forumkit/linguahub"
	"github.com/forumkit/linguahub/cache"
	"go.uber.org/zap"
)

const (
	// contentTypeJSON is the content type the vendor requires on every call.
	contentTypeJSON = "application/json;charset=utf8"

	// authHeader carries the vendor token, both on the token-issuance
	// response and on subsequent requests.
	authHeader = "X-Auth-Token"

	// unsupportedMessage is the vendor error message fragment that marks a
	// rejected language pair, as opposed to a transient failure.
	unsupportedMessage = "language pair is not supported"

	// detectLimit bounds the text sent to the detection endpoint.
	detectLimit = linguahub.DefaultBatchLimit
)

// HubConfig holds configuration for the LinguaHub client.
type HubConfig struct {
	Tenant  string // tenant subdomain
	Project string // project identifier

	// BaseURL overrides the endpoint template. A "%s" verb, when present,
	// is replaced with the tenant; a plain URL is used as-is. Default:
	// "https://%s.api.linguahub.io".
	BaseURL string

	// TokenTTL is how long fetched tokens are cached. It must stay shorter
	// than the vendor's token lifetime; the default 25m sits under the
	// vendor's 30m.
	TokenTTL time.Duration

	Timeout  time.Duration // per-request timeout (default 10s)
	MaxConns int           // outbound connection bound (default 4)
}

// Hub is the LinguaHub API client. It implements both the BatchTranslator
// and Detector interfaces of the engine.
type Hub struct {
	cfg    HubConfig
	client *http.Client
	tokens *tokenSource
	retry  linguahub.RetryConfig
	logger *zap.Logger
}

// NewHub creates a LinguaHub client. Tokens are cached in c under a key
// derived from tenant and project; pass a redis-backed cache to share
// tokens across forum workers. A nil logger disables logging.
func NewHub(cfg HubConfig, c cache.Cache, logger *zap.Logger) *Hub {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://%s.api.linguahub.io"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 25 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Hub{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				MaxConnsPerHost:     cfg.MaxConns,
				MaxIdleConnsPerHost: cfg.MaxConns,
				IdleConnTimeout:     90 * time.Second,
			},
			Timeout: cfg.Timeout,
		},
		retry:  linguahub.DefaultRetryConfig(),
		logger: logger,
	}
	h.tokens = &tokenSource{
		cache: c,
		key:   tokenCacheKey(cfg.Tenant, cfg.Project),
		ttl:   cfg.TokenTTL,
		fetch: h.fetchToken,
	}
	return h
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	DetectedLanguage string `json:"detected_language"`
}

type translateRequest struct {
	Text string `json:"text"`
	From string `json:"from"`
	To   string `json:"to"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// TranslateBatch sends one wrapped batch to the translation endpoint.
//
// The returned result is tagged: translated text on success, the
// unsupported-language sentinel when the vendor rejects the pair, and the
// API-failure sentinel for any other status, malformed body, or transport
// error. Token resolution happens first; a token failure fails the batch.
func (h *Hub) TranslateBatch(ctx context.Context, batch, from, to string) linguahub.Result {
	token, err := h.tokens.token(ctx)
	if err != nil {
		return linguahub.Failed(err)
	}

	status, body, err := h.post(ctx, h.endpoint("/translate"), token, translateRequest{
		Text: batch,
		From: from,
		To:   to,
	})
	if err != nil {
		return linguahub.Failed(err)
	}

	if status != http.StatusOK {
		if isUnsupportedPair(body) {
			return linguahub.Unsupported()
		}
		return linguahub.Failed(&linguahub.ProviderError{
			Message: fmt.Sprintf("translate endpoint returned status %d", status),
		})
	}

	var resp translateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return linguahub.Failed(&linguahub.ProviderError{
			Message: "malformed translate response",
			Cause:   err,
		})
	}

	h.logger.Debug("hub translate",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("request", batch),
		zap.String("response", resp.TranslatedText),
	)

	return linguahub.OK(resp.TranslatedText)
}

// Detect calls the detection endpoint with input truncated to the length
// limit and returns the detected language code.
func (h *Hub) Detect(ctx context.Context, text string) (string, error) {
	token, err := h.tokens.token(ctx)
	if err != nil {
		return "", err
	}

	status, body, err := h.post(ctx, h.endpoint("/detect"), token, detectRequest{
		Text: truncate(text, detectLimit),
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &linguahub.ProviderError{
			Message: fmt.Sprintf("detect endpoint returned status %d", status),
		}
	}

	var resp detectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &linguahub.ProviderError{
			Message: "malformed detect response",
			Cause:   err,
		}
	}
	if resp.DetectedLanguage == "" {
		return "", &linguahub.ProviderError{
			Message: "detect response carried no language",
		}
	}

	h.logger.Debug("hub detect", zap.String("language", resp.DetectedLanguage))

	return resp.DetectedLanguage, nil
}

// fetchToken requests a fresh token. The vendor answers 201 with the token
// in the X-Auth-Token response header; the body is ignored.
func (h *Hub) fetchToken(ctx context.Context) (string, error) {
	status, _, header, err := h.do(ctx, h.endpoint("/auth/tokens"), "", nil)
	if err != nil {
		return "", &linguahub.TokenError{Message: "token request failed", Cause: err}
	}
	if status != http.StatusCreated {
		return "", &linguahub.TokenError{
			Message: fmt.Sprintf("token endpoint returned status %d", status),
		}
	}

	token := header.Get(authHeader)
	if token == "" {
		return "", &linguahub.TokenError{Message: "token response missing " + authHeader + " header"}
	}
	return token, nil
}

// endpoint builds a full URL under the tenant/project path.
func (h *Hub) endpoint(path string) string {
	base := h.cfg.BaseURL
	if strings.Contains(base, "%s") {
		base = fmt.Sprintf(base, h.cfg.Tenant)
	}
	return fmt.Sprintf("%s/v2/projects/%s%s", base, h.cfg.Project, path)
}

// post sends a JSON payload with the auth token and returns status and body.
func (h *Hub) post(ctx context.Context, url, token string, payload interface{}) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, &linguahub.ProviderError{Message: "encoding request", Cause: err}
	}
	status, body, _, err := h.do(ctx, url, token, data)
	return status, body, err
}

// doResponse bundles what one attempt produced.
type doResponse struct {
	status int
	body   []byte
	header http.Header
}

// do performs one POST with bounded retry on transport failures. Retry is
// confined to this connection layer; callers see either a response or the
// final error.
func (h *Hub) do(ctx context.Context, url, token string, payload []byte) (int, []byte, http.Header, error) {
	resp, err := linguahub.WithRetry(ctx, h.retry, func() (doResponse, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
		if err != nil {
			return doResponse{}, &linguahub.ProviderError{Message: "building request", Cause: err}
		}
		req.Header.Set("Content-Type", contentTypeJSON)
		req.Header.Set("Accept", contentTypeJSON)
		req.Header.Set("User-Agent", linguahub.UserAgent())
		if token != "" {
			req.Header.Set(authHeader, token)
		}

		httpResp, err := h.client.Do(req)
		if err != nil {
			return doResponse{}, &linguahub.ProviderError{
				Message:   "transport failure",
				Cause:     err,
				Retryable: ctx.Err() == nil,
			}
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return doResponse{}, &linguahub.ProviderError{
				Message:   "reading response",
				Cause:     err,
				Retryable: true,
			}
		}

		return doResponse{
			status: httpResp.StatusCode,
			body:   respBody,
			header: httpResp.Header,
		}, nil
	})
	if err != nil {
		return 0, nil, nil, err
	}
	return resp.status, resp.body, resp.header, nil
}

// isUnsupportedPair checks an error body for the vendor's unsupported
// language pair message.
func isUnsupportedPair(body []byte) bool {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(resp.Message), unsupportedMessage)
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// Verify Hub implements both engine interfaces
var (
	_ Translator         = (*Hub)(nil)
	_ linguahub.Detector = (*Hub)(nil)
)
