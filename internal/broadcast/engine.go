package broadcast

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/phone"
	"github.com/ratelab/greencast/internal/repository"
)

// progressEvery is how many recipients are processed between two progress
// notifications.
const progressEvery = 10

// Job is the immutable snapshot handed to the engine at finalize time.
// It owns independent copies of everything it needs: the originating
// session may already be gone while the job is still running.
type Job struct {
	ChatID     int64
	Recipients []string
	Message    string
	Attachment *Attachment
	Interval   time.Duration
	SheetPath  string
}

type Progress struct {
	Processed int
	Total     int
	Percent   int
	Succeeded int
	Failed    int
}

type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// AbortReason classifies why a job never reached its recipients.
type AbortReason string

const (
	AbortProfileUnavailable AbortReason = "profile_unavailable"
	AbortProfileIncomplete  AbortReason = "profile_incomplete"
)

// Reporter receives delivery lifecycle notifications. The bot manager
// implements it by formatting operator-facing messages.
type Reporter interface {
	BroadcastStarted(chatID int64, total int)
	BroadcastProgress(chatID int64, p Progress)
	BroadcastFinished(chatID int64, s Summary)
	BroadcastAborted(chatID int64, reason AbortReason)
}

type task struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine runs broadcast jobs, each on its own goroutine, tracked as a
// cancellable task keyed by operator chat id. Cancellation is not exposed
// in the chat UI yet; the handle exists so adding it later is a
// non-breaking extension.
type Engine struct {
	profiles repository.ProfileRepository
	client   greenapi.Client

	mu      sync.Mutex
	running map[int64]*task
}

func NewEngine(profiles repository.ProfileRepository, client greenapi.Client) *Engine {
	return &Engine{
		profiles: profiles,
		client:   client,
		running:  make(map[int64]*task),
	}
}

// Launch starts the job in the background and returns immediately. A
// second launch for the same operator is not prevented; only the most
// recent task stays addressable for cancellation.
func (e *Engine) Launch(job Job, reporter Reporter) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel, done: make(chan struct{})}

	e.mu.Lock()
	e.running[job.ChatID] = t
	e.mu.Unlock()

	go func() {
		defer close(t.done)
		defer cancel()
		defer e.release(job.ChatID, t)
		e.run(ctx, job, reporter)
	}()
}

// Cancel stops the most recent running job of an operator, if any.
func (e *Engine) Cancel(chatID int64) bool {
	e.mu.Lock()
	t, ok := e.running[chatID]
	e.mu.Unlock()
	if !ok {
		return false
	}
	t.cancel()
	return true
}

// Running reports whether a job is currently tracked for the operator.
func (e *Engine) Running(chatID int64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.running[chatID]
	return ok
}

// Wait blocks until the most recent job of the operator finishes. Test
// and shutdown helper.
func (e *Engine) Wait(chatID int64) {
	e.mu.Lock()
	t, ok := e.running[chatID]
	e.mu.Unlock()
	if ok {
		<-t.done
	}
}

func (e *Engine) release(chatID int64, t *task) {
	e.mu.Lock()
	if e.running[chatID] == t {
		delete(e.running, chatID)
	}
	e.mu.Unlock()
}

func (e *Engine) run(ctx context.Context, job Job, reporter Reporter) {
	defer e.cleanup(job)

	profile, err := e.profiles.LoadProfile()
	if err != nil {
		slog.Error("broadcast aborted: profile unavailable", "chat_id", job.ChatID, "error", err)
		reporter.BroadcastAborted(job.ChatID, AbortProfileUnavailable)
		return
	}
	if !profile.Complete() {
		slog.Error("broadcast aborted: profile incomplete", "chat_id", job.ChatID)
		reporter.BroadcastAborted(job.ChatID, AbortProfileIncomplete)
		return
	}
	acc := greenapi.Account{
		APIURL:     profile.APIURL,
		MediaURL:   profile.MediaURL,
		InstanceID: profile.InstanceID,
		Token:      profile.APITokenInstance,
	}

	total := len(job.Recipients)
	slog.Info("broadcast started", "chat_id", job.ChatID, "total", total, "interval", job.Interval, "has_attachment", job.Attachment != nil)
	reporter.BroadcastStarted(job.ChatID, total)

	succeeded, failed := 0, 0
	for i, recipient := range job.Recipients {
		if ctx.Err() != nil {
			// Undelivered recipients count as failures so the summary
			// always adds up to the job total.
			failed += total - i
			slog.Warn("broadcast cancelled", "chat_id", job.ChatID, "processed", i, "total", total)
			break
		}

		// The transport address comes from the stored sheet value as-is,
		// with no digit-count re-validation at send time.
		if e.sendOne(ctx, acc, job, phone.ChatID(recipient)) {
			succeeded++
		} else {
			failed++
			slog.Warn("send failed", "chat_id", job.ChatID, "recipient", recipient)
		}

		processed := i + 1
		if processed%progressEvery == 0 {
			reporter.BroadcastProgress(job.ChatID, Progress{
				Processed: processed,
				Total:     total,
				Percent:   processed * 100 / total,
				Succeeded: succeeded,
				Failed:    failed,
			})
		}
		if processed < total {
			sleepCtx(ctx, job.Interval)
		}
	}

	summary := Summary{Total: total, Succeeded: succeeded, Failed: failed}
	slog.Info("broadcast finished", "chat_id", job.ChatID, "total", summary.Total, "succeeded", summary.Succeeded, "failed", summary.Failed)
	reporter.BroadcastFinished(job.ChatID, summary)
}

// sendOne delivers to a single address. An attachment whose file vanished
// from disk degrades to a text-only send.
func (e *Engine) sendOne(ctx context.Context, acc greenapi.Account, job Job, address string) bool {
	if job.Attachment != nil && fileExists(job.Attachment.Path) {
		result, err := e.client.SendFileByUpload(ctx, acc, address, job.Attachment.Path, job.Message)
		return err == nil && result.Accepted()
	}
	result, err := e.client.SendMessage(ctx, acc, address, job.Message)
	return err == nil && result.Accepted()
}

func (e *Engine) cleanup(job Job) {
	if job.SheetPath == "" {
		return
	}
	if err := os.Remove(job.SheetPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove temporary sheet", "chat_id", job.ChatID, "path", job.SheetPath, "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
