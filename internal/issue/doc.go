// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation: a catalog of
// known failure conditions rendered as markdown cards, and the
// ActionableError type carrying operation context plus suggestions.
package issue
