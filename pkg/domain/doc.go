// Package domain contains the core data types of the menu navigation system:
// screen definitions, per-user session state, renderable views and the action
// wire shape exchanged with front-ends.
//
// The package is intentionally dependency-free. Behavior lives in the engine;
// domain types only carry state and the small invariant-preserving mutations
// (return stack discipline, selection upsert, pagination cursors) that the
// session owns.
package domain
