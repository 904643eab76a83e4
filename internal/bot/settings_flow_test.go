package bot

import (
	"errors"
	"testing"

	"github.com/ratelab/greencast/internal/greenapi"
	"github.com/ratelab/greencast/internal/repository"
)

func openSettings(f *botFixture) {
	f.manager.HandleEvent(f.text(buttonSettings))
}

func TestIntervalPresetAccepted(t *testing.T) {
	f := newFixture(t)
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonInterval))

	f.manager.HandleEvent(f.text("10"))

	if f.repo.savedInterval == nil || f.repo.savedInterval.Interval != 10 {
		t.Fatalf("expected interval 10 saved, got %+v", f.repo.savedInterval)
	}
	if !f.transport.sawText("успешно установлен") {
		t.Fatal("expected save confirmation")
	}
	if got := f.manager.state(testChatID); got != StateSettings {
		t.Fatalf("expected settings state, got %q", got)
	}
}

func TestIntervalBoundsEnforced(t *testing.T) {
	for _, input := range []string{"0", "61", "-5", "abc", "5.5"} {
		f := newFixture(t)
		openSettings(f)
		f.manager.HandleEvent(f.text(buttonInterval))

		f.manager.HandleEvent(f.text(input))

		if f.repo.savedInterval != nil {
			t.Fatalf("input %q: expected nothing saved, got %+v", input, f.repo.savedInterval)
		}
		if f.transport.lastMessage(t).text != messageIntervalInvalid {
			t.Fatalf("input %q: expected invalid message, got %q", input, f.transport.lastMessage(t).text)
		}
		if got := f.manager.state(testChatID); got != StateSettingsInterval {
			t.Fatalf("input %q: expected to stay in interval state, got %q", input, got)
		}
	}

	for _, input := range []string{"1", "60"} {
		f := newFixture(t)
		openSettings(f)
		f.manager.HandleEvent(f.text(buttonInterval))

		f.manager.HandleEvent(f.text(input))

		if f.repo.savedInterval == nil {
			t.Fatalf("input %q: expected interval saved", input)
		}
	}
}

func TestIntervalPromptShowsCurrentValue(t *testing.T) {
	f := newFixture(t)
	f.repo.interval = repository.IntervalSetting{Interval: 15}
	openSettings(f)

	f.manager.HandleEvent(f.text(buttonInterval))

	if !f.transport.sawText("*15 секунд*") {
		t.Fatal("expected current interval in prompt")
	}
}

func TestProfileParamEditRoundtrip(t *testing.T) {
	f := newFixture(t)
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))
	f.manager.HandleEvent(f.text(buttonProfileEdit))

	f.manager.HandleEvent(f.text(buttonProfileAPIURL))
	if !f.transport.sawText("https://api.green-api.com") {
		t.Fatal("expected current value in the edit prompt")
	}

	f.manager.HandleEvent(f.text("https://api.greenapi.example"))
	if !f.transport.sawText("изменить параметр *apiUrl*") {
		t.Fatal("expected confirm prompt naming the parameter")
	}

	f.manager.HandleEvent(f.text(buttonConfirm))

	if f.repo.savedProfile == nil {
		t.Fatal("expected profile saved")
	}
	if f.repo.savedProfile.APIURL != "https://api.greenapi.example" {
		t.Fatalf("unexpected saved url %q", f.repo.savedProfile.APIURL)
	}
	if f.repo.savedProfile.InstanceID != "1101000001" {
		t.Fatal("expected other profile fields preserved")
	}
	if got := f.manager.state(testChatID); got != StateSettingsProfileEdit {
		t.Fatalf("expected edit menu state, got %q", got)
	}
}

func TestProfileParamEditCancelled(t *testing.T) {
	f := newFixture(t)
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))
	f.manager.HandleEvent(f.text(buttonProfileEdit))
	f.manager.HandleEvent(f.text(buttonProfileToken))
	f.manager.HandleEvent(f.text("new-token"))

	f.manager.HandleEvent(f.text(buttonCancel))

	if f.repo.savedProfile != nil {
		t.Fatal("expected no profile save after cancel")
	}
	if got := f.manager.state(testChatID); got != StateSettingsProfileEdit {
		t.Fatalf("expected edit menu state, got %q", got)
	}
}

func TestProfileEditStartsFromEmptyWhenMissing(t *testing.T) {
	f := newFixture(t)
	f.repo.profile = repository.Profile{}
	f.repo.profileErr = repository.ErrNotFound
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))
	f.manager.HandleEvent(f.text(buttonProfileEdit))
	f.manager.HandleEvent(f.text(buttonProfileName))
	f.manager.HandleEvent(f.text("main"))

	f.manager.HandleEvent(f.text(buttonConfirm))

	if f.repo.savedProfile == nil || f.repo.savedProfile.Name != "main" {
		t.Fatalf("expected a fresh profile with the name set, got %+v", f.repo.savedProfile)
	}
}

func TestConnectionTestAuthorized(t *testing.T) {
	f := newFixture(t)
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))

	f.manager.HandleEvent(f.text(buttonConnectionTest))

	if !f.transport.sawText("Соединение установлено успешно") {
		t.Fatal("expected success report")
	}
	if !f.transport.sawText("79000000000@c.us") {
		t.Fatal("expected instance wid in report")
	}
	if got := f.manager.state(testChatID); got != StateSettingsConnectionResult {
		t.Fatalf("expected connection result state, got %q", got)
	}

	f.manager.HandleEvent(f.text(buttonBack))
	if got := f.manager.state(testChatID); got != StateSettingsProfile {
		t.Fatalf("expected profile menu state after back, got %q", got)
	}
}

func TestConnectionTestNotReady(t *testing.T) {
	f := newFixture(t)
	f.client.state = greenapi.InstanceState{StateInstance: "notAuthorized"}
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))

	f.manager.HandleEvent(f.text(buttonConnectionTest))

	if !f.transport.sawText("статус инстанса: *notAuthorized*") {
		t.Fatal("expected not-ready report")
	}
}

func TestConnectionTestTransportError(t *testing.T) {
	f := newFixture(t)
	f.client.stateErr = errors.New("dial tcp: timeout")
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))

	f.manager.HandleEvent(f.text(buttonConnectionTest))

	if !f.transport.sawText("Ошибка при подключении к API") {
		t.Fatal("expected error report")
	}
	if got := f.manager.state(testChatID); got != StateSettingsConnectionResult {
		t.Fatalf("expected connection result state, got %q", got)
	}
}

func TestConnectionTestRequiresCompleteProfile(t *testing.T) {
	f := newFixture(t)
	f.repo.profile = repository.Profile{Name: "main", APIURL: "https://api.green-api.com"}
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))

	f.manager.HandleEvent(f.text(buttonConnectionTest))

	if f.transport.lastMessage(t).text != messageProfileIncomplete {
		t.Fatalf("expected incomplete profile message, got %q", f.transport.lastMessage(t).text)
	}
	if got := f.manager.state(testChatID); got != StateSettingsProfile {
		t.Fatalf("expected to stay in profile menu, got %q", got)
	}
}

func TestConnectionTestRequiresProfile(t *testing.T) {
	f := newFixture(t)
	f.repo.profileErr = repository.ErrNotFound
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))

	f.manager.HandleEvent(f.text(buttonConnectionTest))

	if f.transport.lastMessage(t).text != messageProfileNotSet {
		t.Fatalf("expected profile-not-set message, got %q", f.transport.lastMessage(t).text)
	}
}

func TestSettingsBackNavigation(t *testing.T) {
	f := newFixture(t)
	openSettings(f)
	f.manager.HandleEvent(f.text(buttonProfile))
	f.manager.HandleEvent(f.text(buttonBack))
	if got := f.manager.state(testChatID); got != StateSettings {
		t.Fatalf("expected settings state, got %q", got)
	}
	f.manager.HandleEvent(f.text(buttonBack))
	if got := f.manager.state(testChatID); got != StateMainMenu {
		t.Fatalf("expected main menu state, got %q", got)
	}
}
