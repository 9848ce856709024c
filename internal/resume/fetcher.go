package resume

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/maxaizer/placement-portal/internal/apperr"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads resumes referenced by url.
type Fetcher struct {
	httpClient HTTPClient
	maxBytes   int64
}

// NewFetcher returns a fetcher that only connects to public addresses, redirects included.
func NewFetcher(timeout time.Duration, maxSizeMB int) *Fetcher {
	dialer := &net.Dialer{Timeout: timeout, Control: rejectInternalAddress}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext:         dialer.DialContext,
				TLSHandshakeTimeout: timeout,
			},
		},
		maxBytes: int64(maxSizeMB) << 20,
	}
}

// rejectInternalAddress runs after name resolution, so hostnames pointing inside the network are caught too.
func rejectInternalAddress(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("address %s is not an ip", host)
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified() || ip.IsMulticast() || ip.IsInterfaceLocalMulticast() {
		return fmt.Errorf("address %s is not public", ip)
	}
	return nil
}

func (f *Fetcher) SetHTTPClient(client HTTPClient) {
	f.httpClient = client
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownload, err, "invalid resume url")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownload, err, "failed to download resume")
	}
	defer resp.Body.Close()

	return f.handleResponse(resp)
}

func (f *Fetcher) handleResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperr.New(apperr.KindDownload,
			fmt.Sprintf("failed to download resume: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindDownload, err, "failed to read resume")
	}
	if int64(len(body)) > f.maxBytes {
		return nil, apperr.New(apperr.KindDownload, fmt.Sprintf("resume is larger than %d MB", f.maxBytes>>20))
	}

	return body, nil
}
