// Package textio is the byte-level plumbing shared by the format adapters:
// decoding input bytes to UTF-8 text, loading named files, and publishing
// rendered output atomically.
package textio
