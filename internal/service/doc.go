// Package service sits between the HTTP handlers and the storage façade.
//
// PortfolioService serves the read-only collections, validates and stores
// contact messages, and snapshots the current content for export. Handlers
// never talk to a repository directly.
//
// # Events
//
// Stored contact messages are announced on an EventBus. Subscribers receive
// the message id and timestamp only; visitor details stay in storage.
package service
