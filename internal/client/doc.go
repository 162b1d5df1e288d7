// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the labelerctl command runtime.
//
// Database commands (migrate, load-categories, trim-tags, create-admin) open
// the configured storage directly and run the same services the server uses.
// Remote commands (push, pull, version) talk to a running server through
// [adapter.ServerAdapter].
package client
