// Package show composes integration configuration with active-environment
// state into the views operators see.
//
// BuildSummary lists every integration with its environments; BuildDetail
// describes one integration. Both return plain data, rendered separately
// by Renderer (text) or WriteJSON.
//
// An environment label is its name, suffixed with " (active)" when it is
// the integration's active environment. When the active environment is no
// longer declared the view is marked Stale; labels stay unsuffixed and the
// text renderer lists the stale name on its own.
package show
