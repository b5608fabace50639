package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khalidmt90/subnav/internal/config"
	"github.com/khalidmt90/subnav/internal/database/models"
	"github.com/khalidmt90/subnav/internal/mailbox"
	"github.com/khalidmt90/subnav/internal/registry"
	"github.com/khalidmt90/subnav/internal/scanner"
)

// ErrScanInProgress indicates the user already has a scan running. At most
// one scan per user may be in flight; the guard is an explicit lock, not an
// assumption.
var ErrScanInProgress = errors.New("scan already in progress for this user")

// SyncStatus is the lifecycle state of a scan
type SyncStatus string

const (
	SyncStatusIdle      SyncStatus = "idle"
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusError     SyncStatus = "error"
)

// SyncProgress is the progress record read by pollers. Percent never
// decreases within one scan; the terminal report is always the last write.
type SyncProgress struct {
	Status             SyncStatus `json:"status"`
	Progress           int        `json:"progress"` // 0-100
	TotalEmails        int        `json:"totalEmails"`
	ProcessedEmails    int        `json:"processedEmails"`
	FoundSubscriptions int        `json:"foundSubscriptions"`
	Error              string     `json:"error,omitempty"`
}

// ProgressSink receives progress updates during a scan
type ProgressSink func(SyncProgress)

// SourceFactory builds the mail transport for one scan
type SourceFactory func(ctx context.Context, accessToken string) (mailbox.Source, error)

// Share of the progress budget spent listing message IDs; the remaining
// 80% advances linearly with processed messages.
const listingProgressShare = 20

// ScanService orchestrates inbox scans: it pages matching message IDs,
// runs the extraction pipeline over them in concurrent batches, dedups by
// merchant key and persists the result. One progress record per user,
// written only by the scan goroutine.
type ScanService struct {
	cfg                 *config.Config
	rules               *scanner.Ruleset
	parser              *scanner.Parser
	subscriptionService *SubscriptionService
	logService          *LogService
	newSource           SourceFactory

	progressMu sync.RWMutex
	progress   map[uint]SyncProgress

	scanning sync.Map // userID -> in-flight marker
}

// NewScanService creates a scan service over the given registry and rules
func NewScanService(cfg *config.Config, reg *registry.Registry, rules *scanner.Ruleset, subscriptionService *SubscriptionService, logService *LogService) *ScanService {
	s := &ScanService{
		cfg:                 cfg,
		rules:               rules,
		parser:              scanner.NewParser(reg, rules),
		subscriptionService: subscriptionService,
		logService:          logService,
		progress:            make(map[uint]SyncProgress),
	}
	s.newSource = s.defaultSource
	return s
}

// SetSourceFactory overrides the mail transport, used by tests
func (s *ScanService) SetSourceFactory(f SourceFactory) {
	s.newSource = f
}

// defaultSource picks the configured IMAP mailbox when present, Gmail
// otherwise
func (s *ScanService) defaultSource(ctx context.Context, accessToken string) (mailbox.Source, error) {
	if s.cfg.IMAP.Enabled() {
		return mailbox.NewIMAPSource(s.cfg.IMAP, s.cfg.ScanWindowDays, s.cfg.ScanPageSize), nil
	}
	return mailbox.NewGmailSource(ctx, accessToken, s.cfg.ScanPageSize)
}

// Progress returns the user's current scan progress
func (s *ScanService) Progress(userID uint) SyncProgress {
	s.progressMu.RLock()
	defer s.progressMu.RUnlock()
	if p, ok := s.progress[userID]; ok {
		return p
	}
	return SyncProgress{Status: SyncStatusIdle}
}

// setProgress records progress, keeping the percentage monotone within a
// running scan
func (s *ScanService) setProgress(userID uint, p SyncProgress) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	if cur, ok := s.progress[userID]; ok &&
		cur.Status == SyncStatusSyncing && p.Status == SyncStatusSyncing &&
		p.Progress < cur.Progress {
		p.Progress = cur.Progress
	}
	s.progress[userID] = p
}

// resetProgress starts a fresh progress record for a new scan
func (s *ScanService) resetProgress(userID uint) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.progress[userID] = SyncProgress{Status: SyncStatusSyncing}
}

// StartScan launches a background inbox scan for the user and returns its
// ID immediately. Fails with ErrScanInProgress if a scan is already
// running. The scan outlives the triggering request; callers follow it via
// Progress.
func (s *ScanService) StartScan(userID uint, accessToken string) (string, error) {
	if _, loaded := s.scanning.LoadOrStore(userID, struct{}{}); loaded {
		return "", ErrScanInProgress
	}

	scanID := uuid.NewString()
	s.resetProgress(userID)
	s.logService.LogInfo(userID, models.LogModuleScan, "scan_start", "Inbox scan started", map[string]interface{}{
		"scan_id": scanID,
	})

	go func() {
		defer s.scanning.Delete(userID)

		results, err := s.Scan(context.Background(), userID, accessToken, func(p SyncProgress) {
			s.setProgress(userID, p)
		})
		if err != nil {
			s.logService.LogError(userID, models.LogModuleScan, "scan_failed", "Inbox scan failed", map[string]interface{}{
				"scan_id": scanID,
				"error":   err.Error(),
			})
			return
		}

		created, updated, err := s.subscriptionService.SaveExtracted(userID, results)
		if err != nil {
			s.setProgress(userID, SyncProgress{Status: SyncStatusError, Error: err.Error()})
			s.logService.LogError(userID, models.LogModuleScan, "scan_save_failed", "Failed to save scan results", map[string]interface{}{
				"scan_id": scanID,
				"error":   err.Error(),
			})
			return
		}

		s.logService.LogInfo(userID, models.LogModuleScan, "scan_completed", "Inbox scan completed", map[string]interface{}{
			"scan_id": scanID,
			"found":   len(results),
			"created": created,
			"updated": updated,
		})
	}()

	return scanID, nil
}

// Scan runs one full inbox scan and returns the deduplicated subscription
// candidates. The scan is all-or-nothing: an auth or transport failure
// discards everything collected so far and reports an error to the sink.
// Per-message fetch failures only skip that message.
func (s *ScanService) Scan(ctx context.Context, userID uint, accessToken string, sink ProgressSink) ([]scanner.Subscription, error) {
	src, err := s.newSource(ctx, accessToken)
	if err != nil {
		sink(SyncProgress{Status: SyncStatusError, Error: err.Error()})
		return nil, err
	}
	if closer, ok := src.(io.Closer); ok {
		defer closer.Close()
	}

	query := s.buildQuery(time.Now())

	ids, err := s.collectMessageIDs(ctx, userID, src, query, sink)
	if err != nil {
		sink(SyncProgress{Status: SyncStatusError, Error: err.Error()})
		return nil, err
	}

	if len(ids) == 0 {
		sink(SyncProgress{Status: SyncStatusCompleted, Progress: 100})
		return nil, nil
	}

	results := s.processMessages(ctx, src, ids, sink)

	sink(SyncProgress{
		Status:             SyncStatusCompleted,
		Progress:           100,
		TotalEmails:        len(ids),
		ProcessedEmails:    len(ids),
		FoundSubscriptions: len(results),
	})

	return results, nil
}

// collectMessageIDs pages through the search results up to the configured
// page ceiling. Hitting the ceiling is not an error: the scan proceeds
// with what was collected, and the bound is recorded for diagnostics.
func (s *ScanService) collectMessageIDs(ctx context.Context, userID uint, src mailbox.Source, query string, sink ProgressSink) ([]string, error) {
	var ids []string
	pageToken := ""
	pageCount := 0

	for {
		page, err := src.ListMessageIDs(ctx, query, pageToken)
		if err != nil {
			return nil, err
		}
		ids = append(ids, page.IDs...)
		pageCount++

		percent := pageCount * listingProgressShare / s.cfg.ScanPageLimit
		if percent > listingProgressShare {
			percent = listingProgressShare
		}
		sink(SyncProgress{
			Status:      SyncStatusSyncing,
			Progress:    percent,
			TotalEmails: len(ids),
		})

		if page.NextPageToken == "" {
			return ids, nil
		}
		if pageCount >= s.cfg.ScanPageLimit {
			s.logService.LogWarn(userID, models.LogModuleScan, "page_limit", "Scan reached page ceiling", map[string]interface{}{
				"pages":  pageCount,
				"emails": len(ids),
			})
			return ids, nil
		}
		pageToken = page.NextPageToken
	}
}

// processMessages fetches and parses messages in fixed-size batches. All
// messages of a batch are dispatched together and awaited together,
// bounding concurrent transport calls. Results keep traversal order so the
// first message per merchant key wins deterministically.
func (s *ScanService) processMessages(ctx context.Context, src mailbox.Source, ids []string, sink ProgressSink) []scanner.Subscription {
	var results []scanner.Subscription
	seen := make(map[string]bool)
	processed := 0

	batchSize := s.cfg.ScanBatchSize
	for start := 0; start < len(ids); start += batchSize {
		end := start + batchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[start:end]

		parsed := make([]*scanner.Subscription, len(batch))
		var wg sync.WaitGroup
		for i, id := range batch {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				msg, err := src.GetMessage(ctx, id)
				if err != nil {
					// Recoverable: skip this message, keep the scan going
					log.Printf("[scan] skipping message %s: %v", id, err)
					return
				}
				if sub, ok := s.parser.Parse(scanner.Message{
					From:    msg.From,
					Subject: msg.Subject,
					Snippet: msg.Snippet,
					Body:    msg.Body,
				}); ok {
					parsed[i] = &sub
				}
			}(i, id)
		}
		wg.Wait()

		for _, p := range parsed {
			if p == nil {
				continue
			}
			key := p.MerchantKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			results = append(results, *p)
		}

		processed += len(batch)
		sink(SyncProgress{
			Status:             SyncStatusSyncing,
			Progress:           listingProgressShare + processed*(100-listingProgressShare)/len(ids),
			TotalEmails:        len(ids),
			ProcessedEmails:    processed,
			FoundSubscriptions: len(results),
		})
	}

	return results
}

// buildQuery assembles the broad inbox search: generic billing vocabulary,
// well-known service names and a trailing date window, OR'd together.
// Recall is deliberately wide; precision is recovered by the classifier.
func (s *ScanService) buildQuery(now time.Time) string {
	after := now.AddDate(0, 0, -s.cfg.ScanWindowDays).Format("2006/01/02")

	groups := []string{
		`(subscription OR renewal OR recurring OR "monthly charge")`,
		`(invoice OR receipt OR billing OR payment)`,
		`(notification OR charged OR "auto-renew")`,
		`(membership OR premium OR "pro plan" OR "annual plan")`,
		`(from:noreply OR from:billing OR from:receipts OR from:support OR from:payments)`,
		`("payment confirmation" OR "payment received" OR "successfully charged" OR "transaction")`,
		`(اشتراك OR تجديد OR فاتورة OR إيصال OR سداد OR "تم الدفع" OR "تأكيد الدفع" OR تذكير OR "تم خصم" OR رسوم)`,
	}

	quoted := make([]string, len(s.rules.TopServices))
	for i, name := range s.rules.TopServices {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	groups = append(groups, "("+strings.Join(quoted, " OR ")+")")

	return fmt.Sprintf("(%s) after:%s", strings.Join(groups, " OR "), after)
}
