package keeper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	opensearchclient "github.com/opensearch-project/opensearch-go/v2"

	"searchops/keeper/pkg/document"
)

// TemplateStore is the Remote implementation for composable index templates,
// backed by the typed Indices API of the OpenSearch client.
//
// Template writes are always unconditional: the index template API does not
// document seq_no/primary_term preconditions, so the concurrency token is
// ignored here. Revisit if the API grows support for conditional puts.
type TemplateStore struct {
	client *opensearchclient.Client
	logger *slog.Logger
}

// NewTemplateStore returns a template store using the given cluster client.
func NewTemplateStore(client *opensearchclient.Client, logger *slog.Logger) *TemplateStore {
	return &TemplateStore{client: client, logger: logger}
}

// List fetches all index templates from the cluster.
func (s *TemplateStore) List(ctx context.Context) ([]Entity, error) {
	res, err := s.client.Indices.GetIndexTemplate(
		s.client.Indices.GetIndexTemplate.WithContext(ctx),
		s.client.Indices.GetIndexTemplate.WithName("*"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list index templates: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("failed to list index templates: %s", res.String())
	}

	var payload struct {
		IndexTemplates []struct {
			Name          string            `json:"name"`
			IndexTemplate document.Document `json:"index_template"`
		} `json:"index_templates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode index template listing: %w", err)
	}

	entities := make([]Entity, 0, len(payload.IndexTemplates))
	for _, item := range payload.IndexTemplates {
		if item.Name == "" || item.IndexTemplate == nil {
			s.logger.Warn("skipping malformed index template entry", "name", item.Name)
			continue
		}
		entities = append(entities, Entity{Name: item.Name, Document: item.IndexTemplate})
	}
	return entities, nil
}

// Get returns a single template by name. The template API is list-shaped, so
// this lists and filters; ErrNotFound when the name is absent.
func (s *TemplateStore) Get(ctx context.Context, name string) (*Entity, error) {
	entities, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entities {
		if entities[i].Name == name {
			return &entities[i], nil
		}
	}
	return nil, fmt.Errorf("index template %q: %w", name, ErrNotFound)
}

// Put creates or updates a template by name. The document must pass
// ValidateTemplate; the concurrency token is ignored (see type comment).
func (s *TemplateStore) Put(ctx context.Context, name string, doc document.Document, _ *Token) error {
	if err := ValidateTemplate(doc); err != nil {
		return err
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize template %q: %w", name, err)
	}

	res, err := s.client.Indices.PutIndexTemplate(
		name,
		bytes.NewReader(body),
		s.client.Indices.PutIndexTemplate.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to put index template %q: %w", name, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("failed to put index template %q: %s", name, res.String())
	}
	s.logger.Debug("published index template", "name", name)
	return nil
}

// Delete removes a template by name; ErrNotFound when it does not exist.
func (s *TemplateStore) Delete(ctx context.Context, name string) error {
	res, err := s.client.Indices.DeleteIndexTemplate(
		name,
		s.client.Indices.DeleteIndexTemplate.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete index template %q: %w", name, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("index template %q: %w", name, ErrNotFound)
	}
	if res.IsError() {
		return fmt.Errorf("failed to delete index template %q: %s", name, res.String())
	}
	s.logger.Debug("deleted index template", "name", name)
	return nil
}

// Normalize is the identity for templates: the index template API returns no
// bookkeeping fields inside the body.
func (s *TemplateStore) Normalize(doc document.Document) document.Document {
	return doc
}
