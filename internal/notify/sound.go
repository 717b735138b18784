package notify

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// AssetSound checks the configured alert sound asset is reachable before
// the play event goes out to the client.
type AssetSound struct {
	client *resty.Client
	url    string
}

func NewAssetSound(url string) *AssetSound {
	return &AssetSound{
		client: resty.New().SetTimeout(2 * time.Second),
		url:    url,
	}
}

func (s *AssetSound) Play() (string, error) {
	if s.url == "" {
		return "", errors.New("no alert sound configured")
	}

	resp, err := s.client.R().Head(s.url)
	if err != nil {
		return "", fmt.Errorf("check sound asset: %w", err)
	}
	if resp.StatusCode() >= 400 {
		return "", fmt.Errorf("sound asset returned %d", resp.StatusCode())
	}

	return s.url, nil
}
