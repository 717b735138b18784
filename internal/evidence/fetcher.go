package evidence

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPFetcher downloads evidence frames from object storage.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		client: resty.New().SetTimeout(5 * time.Second),
	}
}

func (f *HTTPFetcher) Fetch(url string) ([]byte, error) {
	resp, err := f.client.R().Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch evidence image: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return nil, fmt.Errorf("evidence image returned %d", resp.StatusCode())
	}
	return resp.Body(), nil
}
