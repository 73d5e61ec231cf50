// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides SQLite-backed persistence for chat message
// history: appending new messages and paging older ones back in.
package store
