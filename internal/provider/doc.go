// Package provider defines the capability interface shared by every
// credential strategy and the registry that selects a strategy by the
// "type" tag of a provider configuration.
//
// Strategies register a Factory from init() and are constructed through
// New. Importing internal/providers registers all built-in strategies.
package provider
