// Package domain defines the content entities served by the portfolio site.
//
// This package contains the record types for the read-mostly collections
// (skills, projects, experience, education) and the append-only contact
// message log.
//
// # Core Types
//
// Skill is a named technology with a category and a 0-100 proficiency score.
//
// Project is a showcase entry with a problem/solution narrative and an
// ordered tech stack.
//
// Experience and Education are timeline entries listed in insertion order.
//
// Message is a visitor contact submission. Its ID and CreatedAt are assigned
// by the storage backend at write time and never change afterwards.
//
// # Dataset
//
// Dataset groups the four read-only collections so a whole catalogue can be
// loaded and written in one pass by the seeder.
//
// # Design Principles
//
// - Identifiers are assigned by the backend, never by callers
// - No database or external dependencies
// - JSON field names match the public API (camelCase)
package domain
