// Package storage downloads off-chain contract metadata documents.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/pkg/logger"
	"contract-registry.backend/pkg/redis"
	"go.uber.org/zap"
)

const (
	ipfsScheme     = "ipfs://"
	cacheKeyPrefix = "contract-metadata:"
	maxDocumentLen = 1 << 20
)

// ErrDocumentTooLarge is returned for metadata documents above the size limit
var ErrDocumentTooLarge = errors.New("metadata document too large")

var (
	getCachedDocument = redis.Get
	setCachedDocument = redis.Set
)

// GatewayStorage fetches ipfs:// and http(s):// documents through an IPFS
// HTTP gateway, optionally caching them in Redis.
type GatewayStorage struct {
	gatewayURL string
	client     *http.Client
	cacheTTL   time.Duration
}

// NewGatewayStorage creates a gateway-backed storage. A zero cacheTTL disables caching.
func NewGatewayStorage(gatewayURL string, client *http.Client, cacheTTL time.Duration) *GatewayStorage {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if !strings.HasSuffix(gatewayURL, "/") {
		gatewayURL += "/"
	}
	return &GatewayStorage{
		gatewayURL: gatewayURL,
		client:     client,
		cacheTTL:   cacheTTL,
	}
}

// ResolveURL maps a metadata URI onto a fetchable URL
func (s *GatewayStorage) ResolveURL(uri string) (string, error) {
	switch {
	case strings.HasPrefix(uri, ipfsScheme):
		path := strings.TrimPrefix(uri, ipfsScheme)
		path = strings.TrimPrefix(path, "ipfs/")
		if path == "" {
			return "", fmt.Errorf("%w: empty ipfs uri", domainerrors.ErrInvalidInput)
		}
		return s.gatewayURL + path, nil
	case strings.HasPrefix(uri, "https://"), strings.HasPrefix(uri, "http://"):
		return uri, nil
	default:
		return "", fmt.Errorf("%w: unsupported metadata uri %q", domainerrors.ErrInvalidInput, uri)
	}
}

// DownloadJSON downloads uri and decodes it as a JSON object
func (s *GatewayStorage) DownloadJSON(ctx context.Context, uri string) (map[string]interface{}, error) {
	target, err := s.ResolveURL(uri)
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		if cached, err := getCachedDocument(ctx, cacheKeyPrefix+uri); err == nil {
			var doc map[string]interface{}
			if json.Unmarshal([]byte(cached), &doc) == nil {
				return doc, nil
			}
		} else if !redis.IsMiss(err) {
			logger.Warn(ctx, "Metadata cache read failed", zap.String("uri", uri), zap.Error(err))
		}
	}

	raw, err := s.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode metadata from %s: %w", uri, err)
	}

	if s.cacheTTL > 0 {
		if err := setCachedDocument(ctx, cacheKeyPrefix+uri, string(raw), s.cacheTTL); err != nil {
			logger.Warn(ctx, "Metadata cache write failed", zap.String("uri", uri), zap.Error(err))
		}
	}
	return doc, nil
}

func (s *GatewayStorage) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download %s: status %d", target, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentLen+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	if len(raw) > maxDocumentLen {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrDocumentTooLarge, target, maxDocumentLen)
	}
	return raw, nil
}
