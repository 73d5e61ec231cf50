// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ripple
// TUI: the adaptive color palette and the Theme of prebuilt lipgloss
// styles used by the message list.
package styles
