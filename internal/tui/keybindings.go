package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding defines a key binding for a particular target type.
//
// If Handler is nil, the binding is shown in the help screen but is not
// dispatched through the key map.
type KeyBinding[T any] struct {
	Keys        []string
	Description string
	Handler     func(*T, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings (primarily for help display).
type BindingCategory[T any] struct {
	Name     string
	Bindings []KeyBinding[T]
}

// ModelKeyBindings returns the key bindings of the chart view.
func ModelKeyBindings() []BindingCategory[Model] {
	return []BindingCategory[Model]{
		{
			Name: "General",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"h", "?"},
					Description: "Toggle this help screen",
					Handler:     (*Model).handleToggleHelp,
				},
				{
					Keys:        []string{"q", "ctrl+c"},
					Description: "Quit",
					Handler:     (*Model).handleQuit,
				},
			},
		},
		{
			Name: "Tracepoints",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"click"},
					Description: "Toggle a tracepoint on the active series",
				},
				{
					Keys:        []string{"tab"},
					Description: "Cycle the active series",
					Handler:     (*Model).handleCycleSeries,
				},
				{
					Keys:        []string{"x"},
					Description: "Clear all tracepoints",
					Handler:     (*Model).handleClearAnnotations,
				},
				{
					Keys:        []string{"s"},
					Description: "Cycle the marker color scheme",
					Handler:     (*Model).handleCycleColorScheme,
				},
				{
					Keys:        []string{"g"},
					Description: "Cycle the marker glyph",
					Handler:     (*Model).handleCycleGlyph,
				},
			},
		},
		{
			Name: "View",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"wheel"},
					Description: "Zoom around the cursor",
				},
				{
					Keys:        []string{"+", "="},
					Description: "Zoom in around the view center",
					Handler:     (*Model).handleZoomIn,
				},
				{
					Keys:        []string{"-", "_"},
					Description: "Zoom out around the view center",
					Handler:     (*Model).handleZoomOut,
				},
				{
					Keys:        []string{"0"},
					Description: "Reset zoom",
					Handler:     (*Model).handleResetZoom,
				},
			},
		},
	}
}

// buildKeyMap flattens the binding categories into a dispatch table.
func buildKeyMap() map[string]func(*Model, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*Model, tea.KeyMsg) tea.Cmd)
	for _, category := range ModelKeyBindings() {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[key] = binding.Handler
			}
		}
	}
	return keyMap
}
