// Package audit implements the repository status audit workflow.
//
// The service discovers git repositories beneath configured roots, gathers
// hosting location, tracking divergence, working tree cleanliness, and last
// commit recency for each, tags stale sibling checkouts that share a name
// prefix, and hands the result to a report renderer.
package audit
