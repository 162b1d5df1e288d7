// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the response messages written by the labeler HTTP
// handlers.
//
// Msg* constants are complete messages. Fmt* constants are format strings
// whose verbs are filled with counts by the handler.
package app

const (
	// MsgUserRegistered is returned after a successful registration.
	MsgUserRegistered = "user registered"

	// MsgLoggedIn is returned after a successful login.
	MsgLoggedIn = "logged in"

	// MsgLoggedOut is returned once the bearer token has been revoked.
	MsgLoggedOut = "logged out"

	MsgTagAdded   = "tag added"
	MsgTagUpdated = "tag updated"
	MsgTagDeleted = "tag deleted"

	MsgDocumentDeleted = "document deleted"

	// MsgInternalErrorPrefix prefixes unexpected failures reported with
	// status 500.
	MsgInternalErrorPrefix = "an error occurred"
)

const (
	// FmtDocumentsImported takes the document and tag counts of an upload.
	FmtDocumentsImported = "imported %d documents with %d tags"

	FmtDocumentsDeleted = "%d documents deleted"

	// FmtTagDeletedReparented takes the number of tags moved to a new
	// entity group.
	FmtTagDeletedReparented = "tag deleted, %d tags moved to a new entity group"

	FmtTagsTrimmed = "%d tags trimmed"

	// FmtCategoriesSeeded takes the created and updated counts.
	FmtCategoriesSeeded = "%d categories created, %d updated"
)
