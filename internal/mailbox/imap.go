package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"

	"github.com/khalidmt90/subnav/internal/config"
)

const imapDialTimeout = 10 * time.Second

// IMAPSource reads a plain IMAP mailbox for users who don't connect Gmail.
// The rich Gmail search syntax cannot be expressed in IMAP SEARCH, so the
// source matches the scan window with SINCE and leaves precision entirely
// to the classifier.
type IMAPSource struct {
	cfg        config.IMAPConfig
	windowDays int
	pageSize   int

	c    *client.Client
	uids []uint32
}

// NewIMAPSource creates an IMAP source over the configured mailbox. The
// connection is established lazily on the first list call.
func NewIMAPSource(cfg config.IMAPConfig, windowDays, pageSize int) *IMAPSource {
	return &IMAPSource{cfg: cfg, windowDays: windowDays, pageSize: pageSize}
}

// ListMessageIDs returns one page of message UIDs from the scan window.
// The query argument is ignored; see the type comment. Page tokens are
// offsets into the search result.
func (s *IMAPSource) ListMessageIDs(ctx context.Context, _ string, pageToken string) (Page, error) {
	if s.c == nil {
		if err := s.connect(); err != nil {
			return Page{}, err
		}
		if err := s.search(); err != nil {
			return Page{}, err
		}
	}

	offset := 0
	if pageToken != "" {
		n, err := strconv.Atoi(pageToken)
		if err != nil {
			return Page{}, fmt.Errorf("%w: bad page token %q", ErrTransport, pageToken)
		}
		offset = n
	}

	end := offset + s.pageSize
	if end > len(s.uids) {
		end = len(s.uids)
	}

	page := Page{}
	for _, uid := range s.uids[offset:end] {
		page.IDs = append(page.IDs, strconv.FormatUint(uint64(uid), 10))
	}
	if end < len(s.uids) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

// GetMessage fetches one message by UID and extracts its plain-text body
func (s *IMAPSource) GetMessage(ctx context.Context, id string) (RawMessage, error) {
	if s.c == nil {
		return RawMessage{}, fmt.Errorf("%w: not connected", ErrTransport)
	}

	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return RawMessage{}, fmt.Errorf("%w: bad message id %q", ErrTransport, id)
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uint32(uid))

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}
	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.c.UidFetch(seqSet, items, messages)
	}()

	var raw RawMessage
	for msg := range messages {
		raw = parseIMAPMessage(msg, section)
	}
	if err := <-done; err != nil {
		return RawMessage{}, fmt.Errorf("%w: fetch uid %d: %v", ErrTransport, uid, err)
	}
	raw.ID = id
	return raw, nil
}

// Close logs out of the server
func (s *IMAPSource) Close() error {
	if s.c == nil {
		return nil
	}
	err := s.c.Logout()
	s.c = nil
	return err
}

func (s *IMAPSource) connect() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	dialer := &net.Dialer{Timeout: imapDialTimeout}

	var c *client.Client
	if s.cfg.UseSSL {
		tlsConfig := &tls.Config{ServerName: s.cfg.Host}
		conn, err := tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("%w: dial %s: %v", ErrTransport, addr, err)
		}
		c, err = client.New(conn)
		if err != nil {
			conn.Close()
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
	} else {
		conn, err := dialer.Dial("tcp", addr)
		if err != nil {
			return fmt.Errorf("%w: dial %s: %v", ErrTransport, addr, err)
		}
		c, err = client.New(conn)
		if err != nil {
			conn.Close()
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	if err := c.Login(s.cfg.Username, s.cfg.Password); err != nil {
		c.Logout()
		return fmt.Errorf("%w: login: %v", ErrAuth, err)
	}

	s.c = c
	return nil
}

func (s *IMAPSource) search() error {
	if _, err := s.c.Select("INBOX", true); err != nil {
		return fmt.Errorf("%w: select inbox: %v", ErrTransport, err)
	}

	criteria := imap.NewSearchCriteria()
	criteria.Since = time.Now().AddDate(0, 0, -s.windowDays)

	uids, err := s.c.UidSearch(criteria)
	if err != nil {
		return fmt.Errorf("%w: search: %v", ErrTransport, err)
	}
	s.uids = uids
	return nil
}

// parseIMAPMessage builds a RawMessage from envelope and body literal
func parseIMAPMessage(msg *imap.Message, section *imap.BodySectionName) RawMessage {
	raw := RawMessage{}
	if msg == nil {
		return raw
	}

	if msg.Envelope != nil {
		raw.Subject = msg.Envelope.Subject
		if len(msg.Envelope.From) > 0 {
			raw.From = formatAddress(msg.Envelope.From[0])
		}
	}

	if literal := msg.GetBody(section); literal != nil {
		if entity, err := message.Read(literal); err == nil || message.IsUnknownCharset(err) {
			raw.Body = extractEntityText(entity)
		}
	}

	raw.Snippet = makeSnippet(raw.Body)
	return raw
}

// extractEntityText recursively collects text/plain parts
func extractEntityText(entity *message.Entity) string {
	mediaType, _, _ := entity.Header.ContentType()

	if strings.HasPrefix(mediaType, "multipart/") {
		var b strings.Builder
		mr := entity.MultipartReader()
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			b.WriteString(extractEntityText(part))
		}
		return b.String()
	}

	if mediaType == "text/plain" || mediaType == "" {
		body, _ := io.ReadAll(entity.Body)
		return string(body)
	}

	return ""
}

// makeSnippet derives a short single-line preview from the body. IMAP has
// no server-side snippet like Gmail does.
func makeSnippet(body string) string {
	snippet := strings.Join(strings.Fields(body), " ")
	runes := []rune(snippet)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return snippet
}

// formatAddress formats an IMAP address as a standard From header value
func formatAddress(addr *imap.Address) string {
	if addr.PersonalName != "" {
		return fmt.Sprintf("%s <%s@%s>", addr.PersonalName, addr.MailboxName, addr.HostName)
	}
	return fmt.Sprintf("%s@%s", addr.MailboxName, addr.HostName)
}
