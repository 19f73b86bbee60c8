// Package session orchestrates access to per-user navigation sessions.
//
// The Manager wraps a ports.SessionStore with get-or-create semantics and
// per-user serialization: callers run their read-modify-write cycles inside
// WithLock, so overlapping transport callbacks for the same user cannot
// interleave. An optional DistributedLocker extends the guarantee across
// replicas.
package session
