// Package ports defines the driven interfaces of the Pathwise core.
//
// The engine only talks to the outside world through these contracts:
// GraphLoader supplies the static narrative graph, BlobStore persists
// opaque session and evidence blobs, and SyncQueue receives outbound
// events for an external sync scheduler. Adapters live under pkg/adapters.
package ports
