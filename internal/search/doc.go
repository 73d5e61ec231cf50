// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search provides in-memory message search: exact substring,
// fuzzy matching with typo tolerance, wildcard patterns, and
// multi-field queries across message text and sender names.
package search
