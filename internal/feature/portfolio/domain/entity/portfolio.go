// Package entity defines the domain models for the portfolio feature.
package entity

// Portfolio is a named, ordered set of ticker symbols.
type Portfolio struct {
	ID      uint
	Name    string
	Symbols []string
}
