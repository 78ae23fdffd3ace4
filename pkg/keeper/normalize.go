package keeper

import (
	"fmt"

	"searchops/keeper/pkg/document"
)

// PolicyInfo is the result of normalizing one raw ISM policy envelope:
// identity, the clean user-authored policy body, the server's last-update
// time (unix seconds, display only, never part of the body), and the
// concurrency token when the envelope carried one.
type PolicyInfo struct {
	Name        string
	Policy      document.Document
	LastUpdated int64
	Token       *Token
}

// NormalizePolicy extracts identity and strips server bookkeeping from a raw
// ISM policy envelope as returned by the cluster, either a single-policy GET
// response or one element of the policies list. The identifier is taken from
// the body's policy_id field when present, falling back to the envelope _id.
// Removed from the body: last_updated_time (converted from milliseconds to
// whole seconds and returned separately), schema_version, and per-entry
// last_updated_time inside the ism_template association list.
//
// The input is not mutated and the result is a pure function of the input
// content: normalizing an already-clean body again yields identical output.
func NormalizePolicy(raw document.Document) (PolicyInfo, error) {
	if raw == nil {
		return PolicyInfo{}, fmt.Errorf("policy envelope is not a mapping: %w", ErrMalformedDocument)
	}
	body, ok := raw["policy"].(map[string]any)
	if !ok {
		return PolicyInfo{}, fmt.Errorf("policy body missing or not a mapping: %w", ErrMalformedDocument)
	}

	policy := document.Copy(body)

	name, _ := policy["policy_id"].(string)
	if name == "" {
		name, _ = raw["_id"].(string)
	}
	if name == "" {
		return PolicyInfo{}, fmt.Errorf("policy has no identifier: %w", ErrMalformedDocument)
	}
	delete(policy, "policy_id")

	var lastUpdated int64
	if ms, ok := asInt64(policy["last_updated_time"]); ok {
		lastUpdated = ms / 1000
	}

	return PolicyInfo{
		Name:        name,
		Policy:      CleanPolicy(policy),
		LastUpdated: lastUpdated,
		Token:       tokenFromEnvelope(raw),
	}, nil
}

// CleanPolicy strips the server-managed bookkeeping fields from a bare ISM
// policy body: last_updated_time, schema_version, and the per-entry
// last_updated_time of each ism_template association. Idempotent; the input
// is not mutated.
func CleanPolicy(body document.Document) document.Document {
	policy := document.Copy(body)
	delete(policy, "last_updated_time")
	delete(policy, "schema_version")
	if templates, ok := policy["ism_template"].([]any); ok {
		for _, item := range templates {
			if entry, ok := item.(map[string]any); ok {
				delete(entry, "last_updated_time")
			}
		}
	}
	return policy
}

// ValidateTemplate performs the minimal structural check required before an
// index template may be published: the document must be a non-empty mapping
// containing an index_patterns field.
func ValidateTemplate(doc document.Document) error {
	if len(doc) == 0 {
		return fmt.Errorf("template is empty or not a mapping: %w", ErrMalformedDocument)
	}
	if _, ok := doc["index_patterns"]; !ok {
		return fmt.Errorf("template has no index_patterns: %w", ErrMalformedDocument)
	}
	return nil
}

// tokenFromEnvelope reads the _seq_no/_primary_term pair from a response
// envelope. Returns nil when either half is absent: an entity without a
// token can only be written unconditionally.
func tokenFromEnvelope(raw document.Document) *Token {
	seqNo, ok := asInt64(raw["_seq_no"])
	if !ok {
		return nil
	}
	primaryTerm, ok := asInt64(raw["_primary_term"])
	if !ok {
		return nil
	}
	return &Token{SeqNo: seqNo, PrimaryTerm: primaryTerm}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
