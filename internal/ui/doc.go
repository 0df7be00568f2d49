// Package ui renders the hnstories terminal interface with Bubble Tea.
//
// The screen is a single list view: a status header, a search box, the
// filtered stories and a help footer. The model reads snapshots from the
// Core on every tick and after each fetch completes; it never mutates story
// state directly. Typing in the search box updates the persisted term and
// narrows the list locally; Enter fetches that term from the API.
//
// Themes come from theme.go and the chosen name is persisted through a
// ThemeStore so it survives restarts.
package ui
