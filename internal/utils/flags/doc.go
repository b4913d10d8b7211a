// Package flags provides helpers for rendering consistent flag usage strings.
package flags
