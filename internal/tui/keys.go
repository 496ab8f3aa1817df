package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the preview.
type KeyMap struct {
	// Layout inputs
	Orientation    key.Binding
	ManualRotation key.Binding
	Image          key.Binding
	SafeArea       key.Binding
	Device         key.Binding
	Markup         key.Binding

	// Content
	Edit   key.Binding
	Accept key.Binding
	Back   key.Binding
	Reset  key.Binding

	// Global
	Quit key.Binding
	Help key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Orientation, k.Device, k.Image, k.Edit, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Orientation, k.ManualRotation, k.SafeArea},
		{k.Device, k.Image, k.Markup},
		{k.Edit, k.Accept, k.Back, k.Reset},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Orientation: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "rotate"),
		),
		ManualRotation: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "manual rotation"),
		),
		Image: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "image"),
		),
		SafeArea: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "safe area"),
		),
		Device: key.NewBinding(
			key.WithKeys("d", "tab"),
			key.WithHelp("d", "device"),
		),
		Markup: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "markup"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit text"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
