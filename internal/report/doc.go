// Package report renders audit results as terminal tables and HTML pages.
package report
