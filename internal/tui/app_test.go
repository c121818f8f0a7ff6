package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/puri-labs/puri/internal/config"
	"github.com/puri-labs/puri/internal/suggest"
)

var testNow = time.Date(2025, time.August, 28, 12, 0, 0, 0, time.Local)

type stubSuggester struct {
	text   string
	err    error
	called int
}

func (s *stubSuggester) Suggest(ctx context.Context, keyword string) (string, error) {
	s.called++
	return s.text, s.err
}

func newTestApp(t *testing.T, opts ...AppOption) *App {
	t.Helper()
	projectDir := t.TempDir()
	if err := config.InitPuriDir(projectDir); err != nil {
		t.Fatalf("init puri dir: %v", err)
	}
	baseOpts := []AppOption{
		WithClock(func() time.Time { return testNow }),
		WithSuggester(&stubSuggester{text: "ok"}),
		WithShareCopier(func(string) error { return nil }),
	}
	baseOpts = append(baseOpts, opts...)
	app, err := NewApp(projectDir, baseOpts...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return app
}

func runCommands(t *testing.T, model tea.Model, cmd tea.Cmd) *App {
	t.Helper()
	app, ok := model.(*App)
	if !ok {
		t.Fatalf("unexpected model type: %T", model)
	}
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		nextModel, nextCmd := app.Update(msg)
		app, ok = nextModel.(*App)
		if !ok {
			t.Fatalf("unexpected model type: %T", nextModel)
		}
		cmd = nextCmd
	}
	return app
}

func TestParticipateDeniedShowsWarningNotModal(t *testing.T) {
	app := newTestApp(t)
	cmd := app.participate()
	if app.participateOpen {
		t.Fatalf("participation modal must not open without a wallet")
	}
	if !app.walletWarning {
		t.Fatalf("denial must raise the warning banner")
	}
	if cmd == nil {
		t.Fatalf("denial must arm the dismissal timer")
	}
}

func TestParticipateOpensModalWhenWalletConnected(t *testing.T) {
	app := newTestApp(t)
	app.connectWallet()
	app.participate()
	if !app.participateOpen {
		t.Fatalf("participation modal must open once the wallet is connected")
	}
	if app.walletWarning {
		t.Fatalf("warning must not be raised on the allowed path")
	}
}

func TestWarningDismissalCoalesces(t *testing.T) {
	app := newTestApp(t)
	app.participate()
	staleSeq := app.warningSeq
	app.participate()
	if app.warningSeq == staleSeq {
		t.Fatalf("repeat denial must re-arm with a fresh sequence")
	}

	model, _ := app.Update(warningExpiredMsg{seq: staleSeq})
	app = model.(*App)
	if !app.walletWarning {
		t.Fatalf("stale expiry must not clear a fresher warning")
	}

	model, _ = app.Update(warningExpiredMsg{seq: app.warningSeq})
	app = model.(*App)
	if app.walletWarning {
		t.Fatalf("matching expiry must clear the warning")
	}
}

func TestSubmitMissionCreationAppendsInOrder(t *testing.T) {
	app := newTestApp(t)
	before := app.registry.Dates()
	app.openCreateModal()
	app.selectedDate = "2025-09-05"
	app.prizeInput.SetValue("500,000")
	app.contentArea.SetValue("지구의 바다 사진을 보여주세요")
	app.submitMissionCreation()

	if app.createOpen {
		t.Fatalf("successful submit must close the modal")
	}
	if !strings.Contains(app.statusMsg, "2025-09-05") {
		t.Fatalf("confirmation must name the date, got %q", app.statusMsg)
	}
	after := app.registry.Dates()
	if len(after) != len(before)+1 {
		t.Fatalf("registry grew by %d dates, want 1", len(after)-len(before))
	}
	for i, d := range before {
		if after[i] != d {
			t.Fatalf("insertion order disturbed at %d: %s != %s", i, after[i], d)
		}
	}
	if after[len(after)-1] != "2025-09-05" {
		t.Fatalf("new date must append last, got %s", after[len(after)-1])
	}
}

func TestSubmitMissionCreationRejectsIncompleteDraft(t *testing.T) {
	app := newTestApp(t)
	before := app.registry.Len()
	app.openCreateModal()
	app.contentArea.SetValue("내용만 있는 미션")
	app.submitMissionCreation()

	if !app.createOpen {
		t.Fatalf("failed submit must keep the modal open")
	}
	if app.registry.Len() != before {
		t.Fatalf("failed submit must not touch the registry")
	}
	if app.statusMsg == "" {
		t.Fatalf("failed submit must surface a validation notice")
	}
}

func TestScheduledAndPastDaysNotSelectable(t *testing.T) {
	app := newTestApp(t)
	app.openCreateModal()

	// 2025-08-29 is in the seeded schedule.
	app.calCursor = time.Date(2025, time.August, 29, 0, 0, 0, 0, time.Local)
	app.calAnchor = app.calCursor
	app.selectCalendarDay()
	if app.selectedDate != "" {
		t.Fatalf("scheduled day must not be selectable, got %q", app.selectedDate)
	}

	// Yesterday relative to the fixed clock.
	app.calCursor = testNow.AddDate(0, 0, -1)
	app.calAnchor = app.calCursor
	app.selectCalendarDay()
	if app.selectedDate != "" {
		t.Fatalf("past day must not be selectable, got %q", app.selectedDate)
	}

	app.calCursor = time.Date(2025, time.September, 5, 0, 0, 0, 0, time.Local)
	app.calAnchor = app.calCursor
	app.selectCalendarDay()
	if app.selectedDate != "2025-09-05" {
		t.Fatalf("open day must be selectable, got %q", app.selectedDate)
	}
}

func TestToggleLikeGatedAndIdempotentPair(t *testing.T) {
	app := newTestApp(t)
	item, _ := app.board.Item(1)
	original := item.Likes

	app.toggleLike(1)
	item, _ = app.board.Item(1)
	if item.Liked || item.Likes != original {
		t.Fatalf("toggle must be inert while logged out")
	}

	app.socialLogin()
	app.toggleLike(1)
	item, _ = app.board.Item(1)
	if !item.Liked || item.Likes != original+1 {
		t.Fatalf("first toggle must add exactly one like, got %d", item.Likes)
	}
	app.toggleLike(1)
	item, _ = app.board.Item(1)
	if item.Liked || item.Likes != original {
		t.Fatalf("toggle pair must restore the original count, got %d", item.Likes)
	}
}

func TestTickReleasedOffMainPage(t *testing.T) {
	app := newTestApp(t)
	app.Init()
	app.navigateTo(pageFeed)

	model, cmd := app.Update(tickMsg(testNow))
	app = model.(*App)
	if cmd != nil {
		t.Fatalf("stale tick off the main page must not re-arm")
	}
	if app.ticking {
		t.Fatalf("stale tick must release the timer flag")
	}

	if cmd := app.navigateTo(pageMain); cmd == nil {
		t.Fatalf("returning to the main page must restart the tick")
	}
	if !app.ticking {
		t.Fatalf("tick flag must be set after returning to main")
	}
}

func TestCountdownRefreshedOnTick(t *testing.T) {
	app := newTestApp(t)
	app.Init()
	if app.remaining.Hours != 12 || app.remaining.Minutes != 0 || app.remaining.Seconds != 0 {
		t.Fatalf("unexpected countdown at noon: %+v", app.remaining)
	}
}

func TestSuggestionOverwritesContent(t *testing.T) {
	stub := &stubSuggester{text: "지구의 노을 사진을 공유해주세요"}
	app := newTestApp(t, WithSuggester(stub))
	app.openCreateModal()
	app.keywordInput.SetValue("노을")
	app.contentArea.SetValue("수동으로 쓰던 내용")

	cmd := app.generateSuggestion()
	if cmd == nil {
		t.Fatalf("expected suggestion command")
	}
	app = runCommands(t, app, cmd)
	if got := app.contentArea.Value(); got != stub.text {
		t.Fatalf("resolved suggestion must overwrite the draft, got %q", got)
	}
	if app.generating {
		t.Fatalf("generating flag must clear on resolution")
	}
}

func TestSuggestionFailureFallbacks(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "service rejection",
			err:  &suggest.GenerationError{Status: 500, Err: errors.New("boom")},
			want: "아이디어 생성에 실패했어요. 다시 시도해주세요!",
		},
		{
			name: "transport failure",
			err:  &suggest.GenerationError{Err: fmt.Errorf("dial tcp: refused")},
			want: "오류가 발생했어요. 네트워크 연결을 확인해주세요.",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, WithSuggester(&stubSuggester{err: tc.err}))
			app.openCreateModal()
			app.keywordInput.SetValue("keyword")
			app = runCommands(t, app, app.generateSuggestion())
			if got := app.contentArea.Value(); got != tc.want {
				t.Fatalf("fallback = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestGenerateSuggestionRequiresKeyword(t *testing.T) {
	stub := &stubSuggester{text: "unused"}
	app := newTestApp(t, WithSuggester(stub))
	app.openCreateModal()

	if cmd := app.generateSuggestion(); cmd != nil {
		t.Fatalf("empty keyword must not produce a command")
	}
	if stub.called != 0 {
		t.Fatalf("empty keyword must not reach the suggester")
	}
	if app.statusMsg == "" {
		t.Fatalf("empty keyword must surface a prompt")
	}
}

func TestSubmitParticipationClosesModalWithoutScheduling(t *testing.T) {
	app := newTestApp(t)
	app.connectWallet()
	app.participate()
	before := app.registry.Len()
	app.attachmentInput.SetValue("sky.png")
	app.descriptionArea.SetValue("오늘 하늘이에요")
	app.submitParticipation()

	if app.participateOpen {
		t.Fatalf("submission must close the participation modal")
	}
	if app.registry.Len() != before {
		t.Fatalf("participation must never mutate the schedule")
	}
}

func TestShareCopiesAndNoticeExpires(t *testing.T) {
	var copied string
	app := newTestApp(t, WithShareCopier(func(title string) error {
		copied = title
		return nil
	}))
	cmd := app.shareMission()
	if cmd == nil {
		t.Fatalf("expected copied-notice timer")
	}
	if copied != app.active.Title {
		t.Fatalf("copier received %q, want the active mission title", copied)
	}
	if !app.copied {
		t.Fatalf("copied notice must be visible")
	}

	model, _ := app.Update(copiedExpiredMsg{seq: app.copiedSeq})
	app = model.(*App)
	if app.copied {
		t.Fatalf("matching expiry must clear the copied notice")
	}
}

func TestShareFailureDegradesToNotice(t *testing.T) {
	app := newTestApp(t, WithShareCopier(func(string) error {
		return errors.New("no clipboard")
	}))
	if cmd := app.shareMission(); cmd != nil {
		t.Fatalf("failed copy must not arm the notice timer")
	}
	if app.copied {
		t.Fatalf("failed copy must not show the copied notice")
	}
	if app.statusMsg == "" {
		t.Fatalf("failed copy must surface a notice")
	}
}

func TestNavigationKeepsOverlayFlags(t *testing.T) {
	app := newTestApp(t)
	app.participate()
	app.navigateTo(pageHistory)
	if !app.walletWarning {
		t.Fatalf("navigation must not touch overlay flags")
	}
	if app.page != pageHistory {
		t.Fatalf("page = %v, want history", app.page)
	}
}
