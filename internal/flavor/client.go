package flavor

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RemoteLookup queries a molecular flavor database service, falling back
// to the bundled static table when the service is unreachable. Results
// are cached with a TTL. A failure for one ingredient never affects the
// lookup of another.
type RemoteLookup struct {
	httpClient *http.Client
	baseURL    string
	adminKey   string // "id:secret", secret hex-encoded
	fallback   *StaticLookup

	mu       sync.Mutex
	cache    map[string]cacheEntry
	cacheTTL time.Duration
}

type cacheEntry struct {
	payload []byte
	fetched time.Time
}

// NewRemoteLookup creates a RemoteLookup. adminKey may be empty for
// services that allow anonymous reads.
func NewRemoteLookup(baseURL, adminKey string) *RemoteLookup {
	return &RemoteLookup{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminKey:   adminKey,
		fallback:   NewStaticLookup(),
		cache:      make(map[string]cacheEntry),
		cacheTTL:   time.Hour,
	}
}

func (c *RemoteLookup) FlavorVector(ctx context.Context, ingredient string) (Vector, Provenance, error) {
	var payload struct {
		FlavorVector Vector `json:"flavor_vector"`
	}
	prov, err := c.fetch(ctx, "by-flavorProfile", ingredient, &payload)
	if err != nil {
		log.Printf("Warning: flavor vector lookup for %q failed, using local data: %v", ingredient, err)
		return c.fallback.FlavorVector(ctx, ingredient)
	}
	if payload.FlavorVector == nil {
		payload.FlavorVector = Vector{}
	}
	return payload.FlavorVector, prov, nil
}

func (c *RemoteLookup) FunctionalGroups(ctx context.Context, ingredient string) ([]string, Provenance, error) {
	var payload struct {
		FunctionalGroups []string `json:"functional_groups"`
	}
	prov, err := c.fetch(ctx, "by-functionalGroups", ingredient, &payload)
	if err != nil {
		log.Printf("Warning: functional group lookup for %q failed, using local data: %v", ingredient, err)
		return c.fallback.FunctionalGroups(ctx, ingredient)
	}
	return payload.FunctionalGroups, prov, nil
}

func (c *RemoteLookup) AromaThreshold(ctx context.Context, ingredient string) (float64, Provenance, error) {
	var payload struct {
		Threshold *float64 `json:"threshold"`
	}
	prov, err := c.fetch(ctx, "by-aromaThresholdValues", ingredient, &payload)
	if err != nil {
		log.Printf("Warning: aroma threshold lookup for %q failed, using local data: %v", ingredient, err)
		return c.fallback.AromaThreshold(ctx, ingredient)
	}
	if payload.Threshold == nil {
		return DefaultAromaThreshold, prov, nil
	}
	return *payload.Threshold, prov, nil
}

// fetch retrieves one endpoint for one ingredient, serving from the TTL
// cache when possible.
func (c *RemoteLookup) fetch(ctx context.Context, endpoint, ingredient string, out any) (Provenance, error) {
	key := endpoint + ":" + strings.ToLower(ingredient)

	c.mu.Lock()
	entry, ok := c.cache[key]
	c.mu.Unlock()
	if ok && time.Since(entry.fetched) < c.cacheTTL {
		if err := json.Unmarshal(entry.payload, out); err != nil {
			return ProvenanceCached, fmt.Errorf("failed to decode cached payload: %w", err)
		}
		return ProvenanceCached, nil
	}

	reqURL := fmt.Sprintf("%s/%s?ingredient=%s", c.baseURL, endpoint, url.QueryEscape(ingredient))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ProvenanceDefault, fmt.Errorf("failed to create request: %w", err)
	}
	if c.adminKey != "" {
		token, err := c.signedToken()
		if err != nil {
			return ProvenanceDefault, fmt.Errorf("failed to create api token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ProvenanceDefault, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ProvenanceDefault, fmt.Errorf("flavor api error: status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return ProvenanceDefault, fmt.Errorf("failed to decode response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return ProvenanceDefault, fmt.Errorf("failed to decode payload: %w", err)
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{payload: raw, fetched: time.Now()}
	c.mu.Unlock()

	return ProvenanceLive, nil
}

// signedToken generates a short-lived JWT from the "id:secret" admin key.
func (c *RemoteLookup) signedToken() (string, error) {
	keyParts := strings.Split(c.adminKey, ":")
	if len(keyParts) != 2 {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	id := keyParts[0]
	secret, err := hex.DecodeString(keyParts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"aud": "/flavor/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
