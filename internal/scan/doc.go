// Package scan prints a compact working-tree status table for every git
// repository under a search root.
package scan
