package levelwalk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// ErrNotFound means the asset does not exist, as opposed to failing to arrive.
var ErrNotFound = errors.New("asset not found")

// Fetcher retrieves "<name>.json" and decodes it into v.
type Fetcher interface {
	FetchJSON(ctx context.Context, name string, v any) error
}

// HTTPFetcher fetches from a web server, the way the browser client did.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) FetchJSON(ctx context.Context, name string, v any) error {
	target, err := url.JoinPath(f.BaseURL, name+".json")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", target, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: unexpected status %s", target, resp.Status)
	}
	return decodeJSON(resp.Body, v)
}

// DirFetcher reads from a file system, typically os.DirFS of the public dir.
type DirFetcher struct {
	FS fs.FS
}

func (f *DirFetcher) FetchJSON(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := path.Clean(strings.TrimPrefix(name, "/")) + ".json"
	file, err := f.FS.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	if err != nil {
		return err
	}
	defer file.Close()
	return decodeJSON(file, v)
}

func decodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
