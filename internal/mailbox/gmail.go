package mailbox

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	gmailv1 "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GmailSource reads a Gmail inbox through the REST API using a
// caller-supplied OAuth access token. Token acquisition and refresh are the
// caller's concern; the token is consumed as-is.
type GmailSource struct {
	svc      *gmailv1.Service
	pageSize int64
}

// NewGmailSource creates a Gmail source for the given access token
func NewGmailSource(ctx context.Context, accessToken string, pageSize int) (*GmailSource, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmailv1.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("%w: create gmail service: %v", ErrTransport, err)
	}
	return &GmailSource{svc: svc, pageSize: int64(pageSize)}, nil
}

// ListMessageIDs returns one page of message IDs matching the Gmail query
func (s *GmailSource) ListMessageIDs(ctx context.Context, query, pageToken string) (Page, error) {
	call := s.svc.Users.Messages.List("me").Q(query).MaxResults(s.pageSize).Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return Page{}, wrapGmailError(err)
	}

	page := Page{NextPageToken: resp.NextPageToken}
	for _, m := range resp.Messages {
		page.IDs = append(page.IDs, m.Id)
	}
	return page, nil
}

// GetMessage fetches a full message and decodes its plain-text body
func (s *GmailSource) GetMessage(ctx context.Context, id string) (RawMessage, error) {
	msg, err := s.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return RawMessage{}, wrapGmailError(err)
	}

	raw := RawMessage{
		ID:      msg.Id,
		Snippet: msg.Snippet,
	}

	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch strings.ToLower(h.Name) {
			case "from":
				raw.From = h.Value
			case "subject":
				raw.Subject = h.Value
			}
		}
		raw.Body = extractPlainText(msg.Payload)
	}

	return raw, nil
}

// extractPlainText walks the MIME tree collecting decoded text/plain parts.
// A single-part message carries the body on the payload itself.
func extractPlainText(part *gmailv1.MessagePart) string {
	if part == nil {
		return ""
	}

	var b strings.Builder
	if part.Body != nil && part.Body.Data != "" &&
		(part.MimeType == "text/plain" || len(part.Parts) == 0) {
		if decoded, err := decodeBody(part.Body.Data); err == nil {
			b.WriteString(decoded)
		}
	}
	for _, p := range part.Parts {
		if p.MimeType == "text/plain" || strings.HasPrefix(p.MimeType, "multipart/") {
			b.WriteString(extractPlainText(p))
		}
	}
	return b.String()
}

// decodeBody decodes Gmail's web-safe base64, padded or not
func decodeBody(data string) (string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.URLEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	return string(decoded), nil
}

// wrapGmailError maps API failures onto the package error taxonomy
func wrapGmailError(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == 401 || apiErr.Code == 403 {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
