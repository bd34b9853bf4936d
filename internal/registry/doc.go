// Package registry maps block kinds to the schema and generator that handle
// them.
//
// A Registry is a layer: lookups consult the layer itself, then its base.
// Derive adds an override layer without touching the base, which is how a
// test or a platform can replace a single kind. Built-in kinds arrive through
// the Module interface during startup; after that the registry is frozen and
// only read.
//
// Before a registry is used, Validate checks that every entry's schema and
// the Go config struct its generator decodes into agree, so a field renamed
// on one side fails at startup instead of in the middle of a pass.
package registry
