// Package playlist implements the shared playlist resource of the media
// runtime.
//
// Exactly one playlist exists per runtime context; it is created lazily
// on first use (see the intf package) and shared by every control
// interface from then on, so all operations are safe for concurrent
// use. Items added to the playlist are persisted to the media library
// when one is attached.
//
// The package also imports WPL (Windows Media Player) playlist files,
// resolving entries against the playlist location and the configured
// media directory.
package playlist
