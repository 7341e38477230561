/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Tabula Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tui

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the browser.
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorPink)
	searchStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	borderStyle   = lipgloss.NewStyle().Foreground(colorSurface1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorLavender).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	selectedStyle = cellStyle.Background(colorSurface0).Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
	helpStyle     = lipgloss.NewStyle().Foreground(colorOverlay1).Italic(true)
	statusStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)
