// Package gestures implements the pointer-gesture control interface.
// An event source (typically a video output window) feeds pointer
// movements in; completed gestures map to playlist actions.
package gestures
