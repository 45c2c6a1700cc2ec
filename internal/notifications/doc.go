// Package notifications pushes run outcomes to an ntfy topic when one is
// configured.
package notifications
