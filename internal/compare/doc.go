// Package compare measures how far two checkouts of the same project have
// drifted apart.
//
// The service links the second repository into the first through a temporary
// remote, fetches its history, resolves the common ancestor of the two
// checked out branches, and summarizes the line changes each side accumulated
// since the split.
package compare
