// Package keeper implements the reconciliation core: metadata normalization
// for ISM policies and index templates, remote and local store adapters, and
// the publish state machine that decides create vs. update under optimistic
// concurrency.
//
// Local YAML files are the durable record of desired state, the cluster the
// durable record of live state. Neither side owns the other: every operation
// is operator-driven, processes entities sequentially, and reports a
// per-entity outcome instead of aborting the batch on the first failure.
package keeper
