// Package domain defines the core business entities of the review scheduling
// engine: content items, their review schedules, the append-only review
// history, and the subscription tiers that cap review intervals.
//
// Entities validate themselves and carry no persistence or transport concerns.
// Mutating transitions live in the ebbinghaus subpackage and the service layer,
// which follow the immutable update pattern: they return new instances rather
// than modifying existing ones.
package domain
