// Package theme styles the desktop toast window with GTK CSS. Colours and
// geometry come from the configured toast style; bundled or user themes in
// ~/.config/toastui/themes/ decorate on top of them.
package theme
