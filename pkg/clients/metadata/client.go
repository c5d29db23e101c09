package metadata

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// Upper bound for a single lookup when the caller sets no deadline.
	requestTimeout = 15 * time.Second
)

var ErrInvalidPackage = errors.New("invalid package descriptor")

type Client interface {
	GetProgram(ctx context.Context, hash common.Hash) (*Package, error)
}

type client struct {
	base   string
	client http.Client
}

func (c *client) GetProgram(ctx context.Context, hash common.Hash) (*Package, error) {
	url := c.base + "/program/" + hex.EncodeToString(hash[:])

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status code is %d", res.StatusCode)
	}

	var p Package
	if err = json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if p.Name == "" || p.Version == "" {
		return nil, fmt.Errorf("%w: name and version are required", ErrInvalidPackage)
	}

	return &p, nil
}

func NewClient(base string) Client {
	return &client{
		base: strings.TrimRight(base, "/"),
		client: http.Client{
			Timeout: requestTimeout,
		},
	}
}
