// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package msglist implements the virtualized, grouped, search-aware
// message list. A raw message snapshot flows through the processor
// (sort, group, annotate), the height estimator (rows per entry,
// cached), and the window manager (which contiguous index range to
// materialize), and only that range is rendered.
package msglist
