// Package toast implements the self-sizing layout of a transient notification
// ("toast"): it computes the toast's frame from its content, the device
// profile, the container size and the orientation, and answers hit tests.
//
// Layout is a pure function of its inputs. Hosts (the terminal preview, the
// GTK window, the PNG renderer) call it again whenever anything geometric
// changes: a resize, a rotation, new content, new insets.
package toast
