package keeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"searchops/keeper/pkg/document"
)

const ismPoliciesPath = "/_plugins/_ism/policies"

// PolicyStore is the Remote implementation for Index State Management
// policies. The ISM plugin endpoints are not covered by the typed client API,
// so requests are built by hand and sent through the client transport, which
// handles addressing, auth and retries.
type PolicyStore struct {
	client *opensearchclient.Client
	logger *slog.Logger
}

// NewPolicyStore returns an ISM policy store using the given cluster client.
func NewPolicyStore(client *opensearchclient.Client, logger *slog.Logger) *PolicyStore {
	return &PolicyStore{client: client, logger: logger}
}

// List fetches all ISM policies and normalizes each envelope. Entries that
// fail structural validation are skipped with a warning so one bad policy
// does not hide the rest of the cluster state.
func (s *PolicyStore) List(ctx context.Context) ([]Entity, error) {
	res, err := s.perform(ctx, http.MethodGet, ismPoliciesPath, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list ISM policies: %w", err)
	}
	defer res.Body.Close()
	if err := errorFromResponse(res); err != nil {
		return nil, fmt.Errorf("failed to list ISM policies: %w", err)
	}

	var payload struct {
		Policies []document.Document `json:"policies"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode ISM policy listing: %w", err)
	}
	if payload.Policies == nil {
		return nil, fmt.Errorf("ISM policy listing has no policies field: %w", ErrMalformedDocument)
	}

	entities := make([]Entity, 0, len(payload.Policies))
	for _, raw := range payload.Policies {
		info, err := NormalizePolicy(raw)
		if err != nil {
			s.logger.Warn("skipping malformed ISM policy entry", "error", err)
			continue
		}
		entities = append(entities, Entity{
			Name:        info.Name,
			Document:    info.Policy,
			LastUpdated: info.LastUpdated,
			Token:       info.Token,
		})
	}
	return entities, nil
}

// Get returns one ISM policy with its concurrency token, or ErrNotFound.
func (s *PolicyStore) Get(ctx context.Context, name string) (*Entity, error) {
	res, err := s.perform(ctx, http.MethodGet, ismPoliciesPath+"/"+url.PathEscape(name), "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get ISM policy %q: %w", name, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("ISM policy %q: %w", name, ErrNotFound)
	}
	if err := errorFromResponse(res); err != nil {
		return nil, fmt.Errorf("failed to get ISM policy %q: %w", name, err)
	}

	var raw document.Document
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode ISM policy %q: %w", name, err)
	}
	info, err := NormalizePolicy(raw)
	if err != nil {
		return nil, fmt.Errorf("ISM policy %q: %w", name, err)
	}
	return &Entity{
		Name:        name,
		Document:    info.Policy,
		LastUpdated: info.LastUpdated,
		Token:       info.Token,
	}, nil
}

// Put creates or updates an ISM policy. A non-nil token is attached as
// if_seq_no/if_primary_term so the cluster rejects the write when the live
// token no longer matches; that rejection surfaces as ErrConflict.
func (s *PolicyStore) Put(ctx context.Context, name string, doc document.Document, token *Token) error {
	if len(doc) == 0 {
		return fmt.Errorf("ISM policy %q is empty or not a mapping: %w", name, ErrMalformedDocument)
	}
	body, err := json.Marshal(map[string]any{"policy": doc})
	if err != nil {
		return fmt.Errorf("failed to serialize ISM policy %q: %w", name, err)
	}

	var query string
	if token != nil {
		v := url.Values{}
		v.Set("if_seq_no", fmt.Sprintf("%d", token.SeqNo))
		v.Set("if_primary_term", fmt.Sprintf("%d", token.PrimaryTerm))
		query = v.Encode()
	}

	res, err := s.perform(ctx, http.MethodPut, ismPoliciesPath+"/"+url.PathEscape(name), query, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to put ISM policy %q: %w", name, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusConflict {
		return fmt.Errorf("ISM policy %q was modified remotely: %w", name, ErrConflict)
	}
	if err := errorFromResponse(res); err != nil {
		return fmt.Errorf("failed to put ISM policy %q: %w", name, err)
	}
	if token != nil {
		s.logger.Debug("updated ISM policy", "name", name, "seq_no", token.SeqNo, "primary_term", token.PrimaryTerm)
	} else {
		s.logger.Debug("created ISM policy", "name", name)
	}
	return nil
}

// Delete removes an ISM policy by name; ErrNotFound when it does not exist.
func (s *PolicyStore) Delete(ctx context.Context, name string) error {
	res, err := s.perform(ctx, http.MethodDelete, ismPoliciesPath+"/"+url.PathEscape(name), "", nil)
	if err != nil {
		return fmt.Errorf("failed to delete ISM policy %q: %w", name, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("ISM policy %q: %w", name, ErrNotFound)
	}
	if err := errorFromResponse(res); err != nil {
		return fmt.Errorf("failed to delete ISM policy %q: %w", name, err)
	}
	s.logger.Debug("deleted ISM policy", "name", name)
	return nil
}

// Normalize strips policy bookkeeping fields from a bare body. Applied to
// local documents so a file saved before normalization existed, or edited
// from a raw API response, still diffs cleanly.
func (s *PolicyStore) Normalize(doc document.Document) document.Document {
	return CleanPolicy(doc)
}

func (s *PolicyStore) perform(ctx context.Context, method, path, query string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = query
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.client.Perform(req)
}

func errorFromResponse(res *http.Response) error {
	if res.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
	return fmt.Errorf("status %d: %s", res.StatusCode, bytes.TrimSpace(data))
}
