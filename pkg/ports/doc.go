/*
Package ports defines the driven ports (interfaces) for the menuflow engine.

These interfaces decouple the navigation core from external implementations,
allowing the engine to work with various session backends, data-fetch clients
and audit destinations.

# Key Interfaces

  - Fetcher: the data-fetch port invoked for dynamic screens.
  - SessionStore: persistence for per-user navigation state.
  - AuditSink: fire-and-forget observation hooks.
  - DistributedLocker: per-user serialization across replicas.
*/
package ports
