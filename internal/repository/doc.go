// Package repository defines the data access interface for the portfolio.
//
// Three implementations satisfy Repository and are interchangeable from the
// caller's point of view:
//
//   - sqlite: a durable store in a single SQLite file (WAL mode)
//   - postgres: a durable store on a PostgreSQL server, chosen when the
//     database location is a postgres:// URL
//   - memory: a volatile, process-local store
//
// All assign integer IDs starting at 1 per collection, return list results
// in insertion order, and report a missing project as (nil, nil) rather
// than an error.
//
// # Write paths
//
// CreateMessage is the only write reachable from request handling. The
// Insert* batch methods exist for the seeder and are not exposed over HTTP.
//
// # Testing
//
// Every implementation runs the shared behavioural suite in repotest from
// its own package.
package repository
