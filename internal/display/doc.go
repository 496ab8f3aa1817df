// Package display shows a toast on the desktop as a GTK4 layer-shell window.
// The window is placed with layer-shell margins taken from the layout
// engine's frame, using the monitor as the container.
package display
