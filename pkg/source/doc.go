// Package source exposes the public contracts of the template acquisition
// stage: where a documentation template comes from (Source), how it is picked
// (Mode), and the Resolver that produces its text. Implementations live under
// internal/source so the HTTP and filesystem details stay hidden from callers.
package source
