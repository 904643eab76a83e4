package broadcast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ratelab/greencast/internal/chat"
	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
)

type mockProfiles struct {
	profile repository.Profile
	err     error
}

func (m *mockProfiles) LoadProfile() (repository.Profile, error) {
	return m.profile, m.err
}

func (m *mockProfiles) SaveProfile(repository.Profile) error { return nil }

func completeProfile() repository.Profile {
	return repository.Profile{
		APIURL:           "https://api.example",
		MediaURL:         "https://media.example",
		InstanceID:       "1101000001",
		APITokenInstance: "token",
	}
}

type sentCall struct {
	address string
	file    string
	caption string
}

type mockClient struct {
	mu        sync.Mutex
	calls     []sentCall
	failAddrs map[string]bool
}

func (m *mockClient) SendMessage(_ context.Context, _ greenapi.Account, chatID, message string) (greenapi.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sentCall{address: chatID})
	if m.failAddrs[chatID] {
		return greenapi.SendResult{}, fmt.Errorf("remote rejected %s", chatID)
	}
	return greenapi.SendResult{IDMessage: "id-" + chatID}, nil
}

func (m *mockClient) SendFileByUpload(_ context.Context, _ greenapi.Account, chatID, filePath, caption string) (greenapi.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, sentCall{address: chatID, file: filePath, caption: caption})
	if m.failAddrs[chatID] {
		return greenapi.SendResult{}, fmt.Errorf("remote rejected %s", chatID)
	}
	return greenapi.SendResult{IDMessage: "id-" + chatID}, nil
}

func (m *mockClient) GetStateInstance(context.Context, greenapi.Account) (greenapi.InstanceState, error) {
	return greenapi.InstanceState{StateInstance: "authorized"}, nil
}

func (m *mockClient) sent() []sentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentCall, len(m.calls))
	copy(out, m.calls)
	return out
}

type recorderReporter struct {
	mu       sync.Mutex
	started  []int
	progress []Progress
	finished []Summary
	aborted  []AbortReason
}

func (r *recorderReporter) BroadcastStarted(_ int64, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, total)
}

func (r *recorderReporter) BroadcastProgress(_ int64, p Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, p)
}

func (r *recorderReporter) BroadcastFinished(_ int64, s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, s)
}

func (r *recorderReporter) BroadcastAborted(_ int64, reason AbortReason) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aborted = append(r.aborted, reason)
}

func runJob(t *testing.T, engine *Engine, job Job, reporter Reporter) {
	t.Helper()
	engine.Launch(job, reporter)
	engine.Wait(job.ChatID)
}

func TestRun_TextBroadcast(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	runJob(t, engine, Job{
		ChatID:     42,
		Recipients: []string{"79123456789", "9123456789"},
		Message:    "Hello",
	}, reporter)

	calls := client.sent()
	if len(calls) != 2 {
		t.Fatalf("expected 2 sends, got %d", len(calls))
	}
	// Addresses are derived from the stored value without re-validation.
	if calls[0].address != "79123456789@c.us" || calls[1].address != "9123456789@c.us" {
		t.Fatalf("unexpected addresses: %+v", calls)
	}
	if len(reporter.finished) != 1 {
		t.Fatalf("expected exactly one summary, got %d", len(reporter.finished))
	}
	s := reporter.finished[0]
	if s.Total != 2 || s.Succeeded != 2 || s.Failed != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestRun_SummaryInvariant(t *testing.T) {
	client := &mockClient{failAddrs: map[string]bool{
		"79000000002@c.us": true,
		"79000000004@c.us": true,
	}}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	recipients := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		recipients = append(recipients, fmt.Sprintf("7900000000%d", i))
	}
	runJob(t, engine, Job{ChatID: 1, Recipients: recipients, Message: "hi"}, reporter)

	s := reporter.finished[0]
	if s.Succeeded+s.Failed != s.Total {
		t.Fatalf("summary invariant violated: %+v", s)
	}
	if s.Succeeded != 3 || s.Failed != 2 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestRun_ProgressEveryTen(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	recipients := make([]string, 25)
	for i := range recipients {
		recipients[i] = fmt.Sprintf("79%09d", i)
	}
	runJob(t, engine, Job{ChatID: 1, Recipients: recipients, Message: "hi"}, reporter)

	if len(reporter.progress) != 2 {
		t.Fatalf("expected progress at 10 and 20 only, got %d notifications", len(reporter.progress))
	}
	if reporter.progress[0].Processed != 10 || reporter.progress[1].Processed != 20 {
		t.Fatalf("unexpected progress points: %+v", reporter.progress)
	}
	if reporter.progress[0].Percent != 40 {
		t.Fatalf("expected 40%% at 10/25, got %d", reporter.progress[0].Percent)
	}
	if len(reporter.finished) != 1 {
		t.Fatalf("expected one completion notification, got %d", len(reporter.finished))
	}
}

func TestRun_AttachmentUploadWithCaption(t *testing.T) {
	dir := t.TempDir()
	mediaPath := filepath.Join(dir, "promo.jpg")
	if err := os.WriteFile(mediaPath, []byte("img"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	runJob(t, engine, Job{
		ChatID:     1,
		Recipients: []string{"79123456789"},
		Message:    "Скидка 20%",
		Attachment: &Attachment{Path: mediaPath, Kind: chat.MediaPhoto, Name: "promo.jpg"},
	}, reporter)

	calls := client.sent()
	if len(calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(calls))
	}
	if calls[0].file != mediaPath || calls[0].caption != "Скидка 20%" {
		t.Fatalf("expected attachment send with caption, got %+v", calls[0])
	}
}

func TestRun_MissingAttachmentFallsBackToText(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	runJob(t, engine, Job{
		ChatID:     1,
		Recipients: []string{"79123456789"},
		Message:    "hi",
		Attachment: &Attachment{Path: filepath.Join(t.TempDir(), "gone.jpg"), Kind: chat.MediaPhoto, Name: "gone.jpg"},
	}, reporter)

	calls := client.sent()
	if len(calls) != 1 {
		t.Fatalf("expected 1 send, got %d", len(calls))
	}
	if calls[0].file != "" {
		t.Fatalf("expected text-only fallback, got file send %+v", calls[0])
	}
	if reporter.finished[0].Succeeded != 1 {
		t.Fatalf("expected fallback send to succeed, got %+v", reporter.finished[0])
	}
}

func TestRun_IncompleteProfileAborts(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: repository.Profile{APIURL: "https://api.example"}}, client)

	sheet := filepath.Join(t.TempDir(), "temp_1.xlsx")
	if err := os.WriteFile(sheet, []byte("x"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	runJob(t, engine, Job{ChatID: 1, Recipients: []string{"79123456789"}, Message: "hi", SheetPath: sheet}, reporter)

	if len(client.sent()) != 0 {
		t.Fatal("expected no sends for incomplete profile")
	}
	if len(reporter.aborted) != 1 || reporter.aborted[0] != AbortProfileIncomplete {
		t.Fatalf("expected profile_incomplete abort, got %+v", reporter.aborted)
	}
	if _, err := os.Stat(sheet); !os.IsNotExist(err) {
		t.Fatal("expected temporary sheet to be removed on abort")
	}
}

func TestRun_RemovesTemporarySheet(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	sheet := filepath.Join(t.TempDir(), "temp_1.xlsx")
	if err := os.WriteFile(sheet, []byte("x"), 0o644); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	runJob(t, engine, Job{ChatID: 1, Recipients: []string{"79123456789"}, Message: "hi", SheetPath: sheet}, reporter)

	if _, err := os.Stat(sheet); !os.IsNotExist(err) {
		t.Fatal("expected temporary sheet to be removed after completion")
	}
}

func TestCancel_CountsRemainingAsFailed(t *testing.T) {
	client := &mockClient{}
	reporter := &recorderReporter{}
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, client)

	engine.Launch(Job{
		ChatID:     7,
		Recipients: []string{"79000000001", "79000000002", "79000000003"},
		Message:    "hi",
		Interval:   200 * time.Millisecond,
	}, reporter)

	// Let the first send go out, then cancel during the inter-message pause.
	time.Sleep(50 * time.Millisecond)
	if !engine.Cancel(7) {
		t.Fatal("expected a running job to cancel")
	}
	engine.Wait(7)

	s := reporter.finished[0]
	if s.Succeeded+s.Failed != s.Total {
		t.Fatalf("summary invariant violated after cancel: %+v", s)
	}
	if s.Total != 3 || s.Succeeded != 1 {
		t.Fatalf("unexpected summary after cancel: %+v", s)
	}
	if engine.Running(7) {
		t.Fatal("expected job to be released after cancel")
	}
}

func TestCancel_NoJob(t *testing.T) {
	engine := NewEngine(&mockProfiles{profile: completeProfile()}, &mockClient{})
	if engine.Cancel(99) {
		t.Fatal("expected cancel of unknown operator to report false")
	}
}
