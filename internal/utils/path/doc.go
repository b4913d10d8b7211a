// Package pathutils normalizes filesystem path inputs shared by commands.
package pathutils
