// internal/tui/app.go
//
// The terminal front end for Puri. bubbletea follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/puri-labs/puri/internal/calendar"
	"github.com/puri-labs/puri/internal/config"
	"github.com/puri-labs/puri/internal/countdown"
	"github.com/puri-labs/puri/internal/feed"
	"github.com/puri-labs/puri/internal/logbook"
	"github.com/puri-labs/puri/internal/mission"
	"github.com/puri-labs/puri/internal/session"
	"github.com/puri-labs/puri/internal/share"
	"github.com/puri-labs/puri/internal/suggest"
)

// page represents which "screen" we're on
type page int

const (
	pageMain    page = iota // Active mission card, countdown, upcoming schedule
	pageFeed                // Earthling feed, obscured until social login
	pageHistory             // Concluded missions
)

func (p page) String() string {
	switch p {
	case pageFeed:
		return "feed"
	case pageHistory:
		return "history"
	default:
		return "main"
	}
}

const (
	tickInterval      = time.Second
	warningVisibleFor = 3000 * time.Millisecond
	copiedVisibleFor  = 2 * time.Second
)

// Focus slots inside the create-mission modal.
const (
	focusCalendar = iota
	focusPrize
	focusKeyword
	focusContent
)

// Focus slots inside the participation modal.
const (
	focusAttachment = iota
	focusDescription
)

// Suggester produces mission copy for a keyword.
type Suggester interface {
	Suggest(ctx context.Context, keyword string) (string, error)
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSuggester overrides the generation client used by the create flow.
func WithSuggester(s Suggester) AppOption {
	return func(a *App) {
		if s != nil {
			a.suggester = s
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithShareCopier overrides the clipboard write used by the share action.
func WithShareCopier(copier func(missionTitle string) error) AppOption {
	return func(a *App) {
		if copier != nil {
			a.copier = copier
		}
	}
}

type tickMsg time.Time

type warningExpiredMsg struct{ seq int }

type copiedExpiredMsg struct{ seq int }

type suggestionMsg struct {
	text string
	err  error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	page     page
	config   *config.Config
	sess     *session.Session
	registry *mission.Registry
	board    *feed.Board
	history  []mission.HistoryEntry
	active   mission.Active
	logbook  *logbook.Logbook

	suggester Suggester
	copier    func(missionTitle string) error
	now       func() time.Time

	// Window size (we get this from bubbletea)
	width  int
	height int

	statusMsg string

	// Countdown to the next midnight, refreshed by the one-second tick.
	// ticking guards against duplicate timers: a stale tick arriving on
	// another page clears it instead of re-arming.
	remaining countdown.Value
	ticking   bool

	// Transient overlays. The sequence counters coalesce re-armed
	// dismissal timers so a stale expiry never clears a fresher notice.
	walletWarning bool
	warningSeq    int
	copied        bool
	copiedSeq     int

	feedCursor int

	participateOpen  bool
	participateFocus int
	attachmentInput  textinput.Model
	descriptionArea  textarea.Model

	createOpen   bool
	createFocus  int
	calAnchor    time.Time
	calCursor    time.Time
	selectedDate string
	prizeInput   textinput.Model
	keywordInput textinput.Model
	contentArea  textarea.Model
	generating   bool
}

// NewApp creates a new App instance rooted at the given project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	lb, err := logbook.Open(cfg.LogsDir())
	if err != nil {
		lb = nil
	}

	sess := session.New()
	if lb != nil {
		lb.Info("Session %s opened", sess.ID)
	}

	attachment := textinput.New()
	attachment.Placeholder = "파일 경로 (선택)"
	attachment.CharLimit = 256

	description := textarea.New()
	description.Placeholder = "간단한 텍스트"
	description.SetHeight(3)

	prize := textinput.New()
	prize.Placeholder = "상금 (KRW)"
	prize.CharLimit = 12

	keyword := textinput.New()
	keyword.Placeholder = "미션 아이디어 키워드"
	keyword.CharLimit = 64

	draftContent := textarea.New()
	draftContent.Placeholder = "키워드를 입력하고 아이디어를 생성하거나 직접 입력해주세요."
	draftContent.SetHeight(3)

	sc := cfg.Suggestion()
	app := &App{
		page:            pageMain,
		config:          cfg,
		sess:            sess,
		registry:        mission.NewRegistry(seedMissions(cfg)),
		board:           feed.NewBoard(feed.DefaultItems()),
		history:         mission.DefaultHistory(),
		active:          mission.TodayMission(),
		logbook:         lb,
		suggester:       suggest.New(sc.BaseURL, sc.Model, cfg.APIKey()),
		copier:          share.Copy,
		now:             time.Now,
		attachmentInput: attachment,
		descriptionArea: description,
		prizeInput:      prize,
		keywordInput:    keyword,
		contentArea:     draftContent,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func seedMissions(cfg *config.Config) []mission.Mission {
	if len(cfg.Project.Schedule) == 0 {
		return mission.DefaultSchedule()
	}
	seeds := make([]mission.Mission, 0, len(cfg.Project.Schedule))
	for _, s := range cfg.Project.Schedule {
		seeds = append(seeds, mission.Mission{Date: s.Date, Content: s.Content, Prize: s.Prize})
	}
	return seeds
}

func (a *App) logInfo(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Info(format, args...)
}

func (a *App) logWarn(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Warn(format, args...)
}

func (a *App) logError(format string, args ...any) {
	if a.logbook == nil {
		return
	}
	a.logbook.Error(format, args...)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	a.remaining = countdown.Until(a.now())
	a.ticking = true
	return a.scheduleTick()
}

func (a *App) scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		inner := max(24, min(msg.Width-14, 60))
		a.descriptionArea.SetWidth(inner)
		a.contentArea.SetWidth(inner)
		return a, nil

	case tickMsg:
		// The countdown only lives on the main page. A tick that lands
		// after navigating away releases the timer instead of re-arming.
		if a.page != pageMain {
			a.ticking = false
			return a, nil
		}
		a.remaining = countdown.Until(a.now())
		return a, a.scheduleTick()

	case warningExpiredMsg:
		if msg.seq == a.warningSeq {
			a.walletWarning = false
		}
		return a, nil

	case copiedExpiredMsg:
		if msg.seq == a.copiedSeq {
			a.copied = false
		}
		return a, nil

	case suggestionMsg:
		a.handleSuggestion(msg)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.createOpen {
			return a.updateCreateModal(msg)
		}
		if a.participateOpen {
			return a.updateParticipateModal(msg)
		}
		return a.updatePage(msg)
	}

	return a, nil
}

func (a *App) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.logInfo("Session %s closed", a.sess.ID)
		return a, tea.Quit
	case "1":
		return a, a.navigateTo(pageMain)
	case "2":
		return a, a.navigateTo(pageFeed)
	case "3":
		return a, a.navigateTo(pageHistory)
	case "w":
		a.connectWallet()
	case "s":
		if a.page == pageFeed {
			a.socialLogin()
		}
	case "p":
		if a.page == pageMain {
			return a, a.participate()
		}
	case "n":
		if a.page == pageMain {
			return a, a.openCreateModal()
		}
	case "c":
		if a.page == pageMain {
			return a, a.shareMission()
		}
	case "up", "k":
		if a.page == pageFeed && a.feedCursor > 0 {
			a.feedCursor--
		}
	case "down", "j":
		if a.page == pageFeed && a.feedCursor < a.board.Len()-1 {
			a.feedCursor++
		}
	case "enter", " ":
		if a.page == pageFeed {
			items := a.board.Items()
			if a.feedCursor >= 0 && a.feedCursor < len(items) {
				a.toggleLike(items[a.feedCursor].ID)
			}
		}
	}
	return a, nil
}

// navigateTo switches the active page. Overlay flags are untouched; the
// countdown timer is re-armed only when returning to the main page and
// only if no tick is already in flight.
func (a *App) navigateTo(target page) tea.Cmd {
	if a.page == target {
		return nil
	}
	a.page = target
	a.logInfo("Page · %s", target)
	if target == pageMain && !a.ticking {
		a.ticking = true
		a.remaining = countdown.Until(a.now())
		return a.scheduleTick()
	}
	return nil
}

// connectWallet sets the wallet flag. Idempotent, never fails.
func (a *App) connectWallet() {
	already := a.sess.Flags.WalletConnected
	a.sess.ConnectWallet()
	if !already {
		a.statusMsg = "지갑이 연결되었습니다."
		a.logInfo("Wallet connected")
	}
}

// socialLogin sets the login flag, unblurring the feed.
func (a *App) socialLogin() {
	already := a.sess.Flags.SocialLoggedIn
	a.sess.SocialLogin()
	if !already {
		a.statusMsg = "로그인되었습니다."
		a.logInfo("Social login completed")
	}
}

// participate opens the participation modal when the wallet gate is open.
// A closed gate raises the transient warning banner instead and arms its
// auto-dismiss timer; repeat denials re-arm a fresh timer whose expiry
// coalesces through the sequence counter.
func (a *App) participate() tea.Cmd {
	if a.sess.Flags.CanParticipate() {
		a.participateOpen = true
		a.participateFocus = focusAttachment
		a.attachmentInput.SetValue("")
		a.descriptionArea.SetValue("")
		a.descriptionArea.Blur()
		a.logInfo("Participation modal opened")
		return a.attachmentInput.Focus()
	}
	a.walletWarning = true
	a.warningSeq++
	seq := a.warningSeq
	a.logWarn("Participation blocked: wallet not connected")
	return tea.Tick(warningVisibleFor, func(time.Time) tea.Msg {
		return warningExpiredMsg{seq: seq}
	})
}

// toggleLike flips the viewer's like on a feed item. Inert while the
// login gate is closed.
func (a *App) toggleLike(id int) {
	if !a.sess.Flags.CanLike() {
		return
	}
	a.board.Toggle(id)
	if item, ok := a.board.Item(id); ok {
		a.logInfo("Feed #%d like toggled (now %d)", id, item.Likes)
	}
}

func (a *App) openCreateModal() tea.Cmd {
	today := calendar.Truncate(a.now())
	a.createOpen = true
	a.createFocus = focusCalendar
	a.calAnchor = today
	a.calCursor = today
	a.selectedDate = ""
	a.generating = false
	a.prizeInput.SetValue("")
	a.prizeInput.Blur()
	a.keywordInput.SetValue("")
	a.keywordInput.Blur()
	a.contentArea.SetValue("")
	a.contentArea.Blur()
	a.logInfo("Create-mission modal opened")
	return nil
}

func (a *App) closeCreateModal() {
	a.createOpen = false
	a.logInfo("Create-mission modal closed")
}

func (a *App) closeParticipateModal() {
	a.participateOpen = false
	a.logInfo("Participation modal closed")
}

func (a *App) updateCreateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeCreateModal()
		return a, nil
	case "tab":
		return a, a.cycleCreateFocus(1)
	case "shift+tab":
		return a, a.cycleCreateFocus(-1)
	case "ctrl+s":
		a.submitMissionCreation()
		return a, nil
	case "ctrl+g":
		return a, a.generateSuggestion()
	}

	if a.createFocus == focusCalendar {
		switch msg.String() {
		case "left", "h":
			a.moveCalendarCursor(-1)
		case "right", "l":
			a.moveCalendarCursor(1)
		case "up", "k":
			a.moveCalendarCursor(-7)
		case "down", "j":
			a.moveCalendarCursor(7)
		case "pgup", "[":
			a.calAnchor = calendar.PrevMonth(a.calAnchor)
			a.calCursor = a.calAnchor
		case "pgdown", "]":
			a.calAnchor = calendar.NextMonth(a.calAnchor)
			a.calCursor = a.calAnchor
		case "enter", " ":
			a.selectCalendarDay()
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.createFocus {
	case focusPrize:
		a.prizeInput, cmd = a.prizeInput.Update(msg)
	case focusKeyword:
		if msg.String() == "enter" {
			return a, a.generateSuggestion()
		}
		a.keywordInput, cmd = a.keywordInput.Update(msg)
	case focusContent:
		a.contentArea, cmd = a.contentArea.Update(msg)
	}
	return a, cmd
}

func (a *App) cycleCreateFocus(dir int) tea.Cmd {
	a.prizeInput.Blur()
	a.keywordInput.Blur()
	a.contentArea.Blur()
	a.createFocus = (a.createFocus + dir + 4) % 4
	switch a.createFocus {
	case focusPrize:
		return a.prizeInput.Focus()
	case focusKeyword:
		return a.keywordInput.Focus()
	case focusContent:
		return a.contentArea.Focus()
	}
	return nil
}

func (a *App) moveCalendarCursor(days int) {
	a.calCursor = a.calCursor.AddDate(0, 0, days)
	a.calAnchor = a.calCursor
}

// selectCalendarDay commits the cursor's date as the draft selection.
// Past and already-scheduled days are silently ignored.
func (a *App) selectCalendarDay() {
	today := calendar.Truncate(a.now())
	grid := calendar.MonthGrid(a.calAnchor, today, a.registry)
	date := a.calCursor.Format(calendar.ISODate)
	for _, cell := range grid.Cells {
		if cell.Date == date {
			if cell.Selectable {
				a.selectedDate = date
			}
			return
		}
	}
}

// submitMissionCreation validates the draft and commits it to the
// registry. On failure the modal stays open and the registry is
// untouched.
func (a *App) submitMissionCreation() {
	draft := mission.Draft{
		Date:    a.selectedDate,
		Prize:   parsePrize(a.prizeInput.Value()),
		Content: strings.TrimSpace(a.contentArea.Value()),
	}
	if err := draft.Validate(); err != nil {
		a.statusMsg = "날짜와 미션 내용을 모두 입력해주세요."
		a.logWarn("Mission creation rejected: %v", err)
		return
	}
	if err := a.registry.Add(mission.Mission{Date: draft.Date, Content: draft.Content, Prize: draft.Prize}); err != nil {
		a.statusMsg = "이미 미션이 예정된 날짜예요."
		a.logWarn("Mission creation rejected: %v", err)
		return
	}
	a.createOpen = false
	a.statusMsg = fmt.Sprintf("%s에 새로운 미션이 성공적으로 생성되었습니다!", draft.Date)
	a.logInfo("Mission scheduled for %s (prize %d KRW)", draft.Date, draft.Prize)
}

// submitParticipation closes the modal and records the submission. The
// schedule is never touched by participation.
func (a *App) submitParticipation() {
	id := uuid.NewString()
	attachment := strings.TrimSpace(a.attachmentInput.Value())
	a.participateOpen = false
	a.statusMsg = "미션 참여가 제출되었습니다!"
	if attachment != "" {
		a.logInfo("Participation %s submitted with attachment %s", id, attachment)
	} else {
		a.logInfo("Participation %s submitted", id)
	}
}

func (a *App) updateParticipateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.closeParticipateModal()
		return a, nil
	case "tab", "shift+tab":
		a.attachmentInput.Blur()
		a.descriptionArea.Blur()
		if a.participateFocus == focusAttachment {
			a.participateFocus = focusDescription
			return a, a.descriptionArea.Focus()
		}
		a.participateFocus = focusAttachment
		return a, a.attachmentInput.Focus()
	case "ctrl+s":
		a.submitParticipation()
		return a, nil
	}

	var cmd tea.Cmd
	if a.participateFocus == focusAttachment {
		a.attachmentInput, cmd = a.attachmentInput.Update(msg)
	} else {
		a.descriptionArea, cmd = a.descriptionArea.Update(msg)
	}
	return a, cmd
}

// generateSuggestion fires the asynchronous suggestion round trip. The
// draft stays editable while it is in flight; resolution overwrites the
// content field last-writer-wins.
func (a *App) generateSuggestion() tea.Cmd {
	keyword := strings.TrimSpace(a.keywordInput.Value())
	if keyword == "" {
		a.statusMsg = "아이디어 생성을 위한 키워드를 입력해주세요."
		return nil
	}
	if a.generating {
		return nil
	}
	a.generating = true
	a.logInfo("Requesting mission idea for keyword %q", keyword)
	suggester := a.suggester
	return func() tea.Msg {
		text, err := suggester.Suggest(context.Background(), keyword)
		return suggestionMsg{text: text, err: err}
	}
}

func (a *App) handleSuggestion(msg suggestionMsg) {
	a.generating = false
	if msg.err == nil {
		a.contentArea.SetValue(msg.text)
		a.logInfo("Suggestion applied to mission content")
		return
	}
	if errors.Is(msg.err, suggest.ErrEmptyKeyword) {
		a.statusMsg = "아이디어 생성을 위한 키워드를 입력해주세요."
		return
	}
	var genErr *suggest.GenerationError
	if errors.As(msg.err, &genErr) && genErr.Status != 0 {
		a.contentArea.SetValue("아이디어 생성에 실패했어요. 다시 시도해주세요!")
	} else {
		a.contentArea.SetValue("오류가 발생했어요. 네트워크 연결을 확인해주세요.")
	}
	a.logError("Suggestion failed: %v", msg.err)
}

// shareMission copies the share blurb for the active mission to the
// clipboard. Failure degrades to a notice.
func (a *App) shareMission() tea.Cmd {
	if err := a.copier(a.active.Title); err != nil {
		a.statusMsg = "클립보드 복사에 실패했습니다."
		a.logWarn("Share failed: %v", err)
		return nil
	}
	a.copied = true
	a.copiedSeq++
	seq := a.copiedSeq
	a.logInfo("Share text copied to clipboard")
	return tea.Tick(copiedVisibleFor, func(time.Time) tea.Msg {
		return copiedExpiredMsg{seq: seq}
	})
}

func parsePrize(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
