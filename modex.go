// Package modex provides a documentation module extraction tool. It crawls
// documentation sites, structures each page's HTML into an ordered outline of
// headings and content, and uses a language model to derive a catalog of
// modules and submodules with descriptions.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/).
package modex
