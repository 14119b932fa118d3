package verify

import (
	"bytes"
	"context"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bookwise/be/internal/config"
)

// Result is the outcome of probing one URL. A failed probe is a value, not
// an error: the caller's policy is "this link does not count", never abort.
type Result struct {
	Verified    bool   `json:"verified"`
	ResolvedURL string `json:"resolved_url,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

type Service interface {
	Verify(ctx context.Context, url string) Result
}

// Verifier confirms a candidate link resolves to a retrievable file without
// ever downloading the file. HEAD first; when HEAD is rejected or the
// content type is ambiguous, a ranged GET sniffs the first bytes for a PDF
// signature and aborts the body immediately.
type Verifier struct {
	client    *http.Client
	userAgent string
}

func NewVerifier(cfg config.VerifyConfig) *Verifier {
	return &Verifier{
		client:    &http.Client{Timeout: cfg.ProbeTimeout},
		userAgent: cfg.UserAgent,
	}
}

func (v *Verifier) Verify(ctx context.Context, url string) Result {
	if url == "" {
		return Result{}
	}

	if res, decided := v.probeHead(ctx, url); decided {
		return res
	}
	return v.probeRange(ctx, url)
}

// probeHead issues the HEAD probe. decided=false means the probe was
// inconclusive and the caller should fall through to the ranged GET.
func (v *Verifier) probeHead(ctx context.Context, url string) (Result, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return Result{}, true
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		// Network-level HEAD failures are often method-specific; let the
		// ranged GET decide.
		return Result{}, false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusMethodNotAllowed,
		resp.StatusCode == http.StatusNotImplemented,
		resp.StatusCode == http.StatusForbidden:
		return Result{}, false
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Result{}, true
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !fileLike(contentType) {
		// Reachable but possibly an HTML shim in front of the file.
		return Result{}, false
	}

	return Result{
		Verified:    true,
		ResolvedURL: resp.Request.URL.String(),
		ContentType: contentType,
		FileSize:    contentLength(resp),
	}, true
}

// probeRange requests the first KB and checks for the %PDF magic. The body
// is closed as soon as the sniff completes; the transfer never continues.
func (v *Verifier) probeRange(ctx context.Context, url string) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}
	}
	req.Header.Set("User-Agent", v.userAgent)
	req.Header.Set("Range", "bytes=0-1023")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("verify: ranged probe of %s failed: %v", url, err)
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	head := make([]byte, 1024)
	n, _ := io.ReadFull(resp.Body, head)
	head = head[:n]

	if !fileLike(contentType) && !bytes.HasPrefix(head, []byte("%PDF")) {
		return Result{ContentType: contentType}
	}

	return Result{
		Verified:    true,
		ResolvedURL: resp.Request.URL.String(),
		ContentType: contentType,
		FileSize:    contentLength(resp),
	}
}

func fileLike(contentType string) bool {
	for _, t := range []string{"pdf", "epub", "application/octet-stream"} {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}

func contentLength(resp *http.Response) int64 {
	if resp.ContentLength > 0 {
		return resp.ContentLength
	}
	// Ranged responses carry the full size after the slash.
	if cr := resp.Header.Get("Content-Range"); cr != "" {
		if i := strings.LastIndex(cr, "/"); i >= 0 {
			if size, err := strconv.ParseInt(cr[i+1:], 10, 64); err == nil {
				return size
			}
		}
	}
	return 0
}
