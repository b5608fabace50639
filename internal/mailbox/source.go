// Package mailbox provides the mail-transport collaborators for inbox
// scanning. A Source lists matching message IDs page by page and fetches
// individual messages; the extraction pipeline only ever sees the decoded
// RawMessage content.
package mailbox

import (
	"context"
	"errors"
)

var (
	// ErrAuth indicates the access token or credentials were rejected
	ErrAuth = errors.New("mailbox: authentication rejected")
	// ErrTransport indicates a network or provider API failure
	ErrTransport = errors.New("mailbox: transport failure")
)

// RawMessage is one fetched email, immutable once returned
type RawMessage struct {
	ID      string
	From    string
	Subject string
	Snippet string
	Body    string
}

// Page is one page of message IDs matching a search
type Page struct {
	IDs           []string
	NextPageToken string // empty when this is the last page
}

// Source lists and fetches inbox messages
type Source interface {
	// ListMessageIDs returns message IDs matching query. Pass an empty
	// pageToken for the first page and the returned NextPageToken for
	// subsequent pages.
	ListMessageIDs(ctx context.Context, query, pageToken string) (Page, error)

	// GetMessage fetches one message with its body decoded to plain text.
	GetMessage(ctx context.Context, id string) (RawMessage, error)
}
