// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for ripple TUI.
package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ripple-tui/internal/ui/styles"
)

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// RenderCodeBlocks replaces fenced ``` blocks inside a message body
// with syntax-highlighted, bordered blocks. Text outside fences passes
// through untouched. An unclosed fence is treated as running to the
// end of the message.
func RenderCodeBlocks(text string, maxWidth int) string {
	if !strings.Contains(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	var result []string
	var codeLines []string
	var language string
	inFence := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			if inFence {
				result = append(result, renderBlock(language, strings.Join(codeLines, "\n"), maxWidth))
				codeLines = nil
				language = ""
				inFence = false
			} else {
				language = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				inFence = true
			}
		case inFence:
			codeLines = append(codeLines, line)
		default:
			result = append(result, line)
		}
	}

	if inFence && len(codeLines) > 0 {
		result = append(result, renderBlock(language, strings.Join(codeLines, "\n"), maxWidth))
	}

	return strings.Join(result, "\n")
}

// renderBlock renders one highlighted code block.
func renderBlock(language, code string, maxWidth int) string {
	highlighted := Highlight(strings.TrimRight(code, "\n"), language)

	if maxWidth < 24 {
		maxWidth = 24
	}

	block := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Overlay).
		Padding(0, 1).
		MaxWidth(maxWidth)

	if language != "" {
		badge := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(language)
		return block.Render(badge + "\n" + highlighted)
	}
	return block.Render(highlighted)
}

// =============================================================================
// SYNTAX HIGHLIGHTING (Chroma-based)
// =============================================================================

// Highlight applies ANSI syntax highlighting via chroma. An unknown or
// empty language falls back to content analysis, then to plain text.
func Highlight(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get("monokai")
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}
	return buf.String()
}
