package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/puri-labs/puri/internal/calendar"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ADE80"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ADE80"))

	warningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#B91C1C")).
			Padding(0, 2)

	selectedDayStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#6366F1"))

	cursorDayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ADE80"))

	disabledDayStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#555555")).
				Strikethrough(true)
)

// View renders the current state to a string.
func (a *App) View() string {
	var content string
	switch a.page {
	case pageFeed:
		content = a.renderFeed()
	case pageHistory:
		content = a.renderHistory()
	default:
		content = a.renderMain()
	}

	if a.createOpen {
		content = a.renderCreateModal()
	} else if a.participateOpen {
		content = a.renderParticipateModal()
	}

	sections := []string{a.renderHeader(), content}
	if a.walletWarning {
		sections = append(sections, warningStyle.Render("미션에 참여하려면 지갑을 먼저 연결해주세요!"))
	}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, a.renderFooter())
	return strings.Join(sections, "\n")
}

func (a *App) renderHeader() string {
	logo := titleStyle.Render("✦ PURI")
	nav := dimStyle.Render("[1] 오늘의 미션  [2] 지구인 피드  [3] 미션 히스토리")
	wallet := "[w] Connect Wallet"
	if a.sess.Flags.WalletConnected {
		wallet = accentStyle.Render("Wallet Connected")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, logo, "   ", nav, "   ", wallet)
}

func (a *App) renderFooter() string {
	hints := "q quit"
	switch {
	case a.createOpen:
		hints = "tab focus · enter select/generate · ctrl+s 생성 · esc close"
	case a.participateOpen:
		hints = "tab focus · ctrl+s 제출 · esc close"
	case a.page == pageFeed:
		hints = "↑/↓ move · enter like · s login · q quit"
	case a.page == pageMain:
		hints = "p participate · n new mission · c share · q quit"
	}
	line := dimStyle.Render(hints)
	if a.statusMsg != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, a.statusMsg, line)
	}
	return line
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := headingStyle.Render(fmt.Sprintf("LOG · %s", fileName))
	body := dimStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}

func (a *App) renderMain() string {
	card := a.renderMissionCard()
	prompt := a.renderCreatePrompt()
	upcoming := a.renderUpcoming()
	return lipgloss.JoinVertical(lipgloss.Left, card, prompt, upcoming)
}

func (a *App) renderMissionCard() string {
	label := headingStyle.Render("오늘의 미션")
	title := lipgloss.NewStyle().Bold(true).Render(a.active.Title)
	desc := dimStyle.Render(a.active.Description)
	prize := accentStyle.Render("상금 " + a.active.PrizeLabel)
	clock := a.renderCountdown()
	share := "[c] 공유하기"
	if a.copied {
		share = accentStyle.Render("복사 완료!")
	}
	actions := fmt.Sprintf("[p] 미션 참여하기    %s", share)
	body := lipgloss.JoinVertical(lipgloss.Left,
		label, title, desc, "", prize, "",
		dimStyle.Render("미션 종료까지 남은 시간"), clock, "", actions,
	)
	return panelStyle.Render(body)
}

func (a *App) renderCountdown() string {
	box := func(value int, unit string) string {
		cell := lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Render(fmt.Sprintf("%02d", value))
		return lipgloss.JoinVertical(lipgloss.Center, cell, dimStyle.Render(unit))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box(a.remaining.Hours, "hours"), " ",
		box(a.remaining.Minutes, "minutes"), " ",
		box(a.remaining.Seconds, "seconds"),
	)
}

func (a *App) renderCreatePrompt() string {
	head := lipgloss.NewStyle().Bold(true).Render("푸리에게 새로운 미션을 제안해보세요!")
	sub := dimStyle.Render("하루에 한 명만 다음 미션을 만들 수 있어요. 지금 바로 도전해보세요.")
	action := "[n] 새로운 미션 제안하기"
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, sub, "", action))
}

func (a *App) renderUpcoming() string {
	head := headingStyle.Render("앞으로 시작될 미션")
	missions := a.registry.Missions()
	if len(missions) == 0 {
		return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, dimStyle.Render("예정된 미션이 없습니다.")))
	}
	var rows []string
	for _, m := range missions {
		date := dimStyle.Render(m.Date)
		tag := accentStyle.Render("예정")
		prize := accentStyle.Render(formatKRW(m.Prize) + " KRW")
		rows = append(rows, fmt.Sprintf("%s  %s  %s %s", date, m.Content, tag, prize))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, strings.Join(rows, "\n")))
}

func (a *App) renderFeed() string {
	head := headingStyle.Render("지구인 피드")
	items := a.board.Items()
	interactive := a.sess.Flags.CanViewFeed()
	var rows []string
	for i, item := range items {
		heart := "♡"
		if item.Liked {
			heart = "♥"
		}
		line := fmt.Sprintf("@%-15s %s  %s %d", item.Author, item.ImageRef, heart, item.Likes)
		if !interactive {
			line = obscure(line)
		}
		if interactive && i == a.feedCursor {
			line = cursorDayStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}
	body := strings.Join(rows, "\n")
	if !interactive {
		overlay := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render("피드를 보려면 간편 로그인이 필요해요!"),
			dimStyle.Render("푸리가 지구인들의 멋진 사진들을 모아놨어요."),
			"",
			"[s] 간편 로그인",
		)
		body = lipgloss.JoinVertical(lipgloss.Left, dimStyle.Render(body), "", panelStyle.Render(overlay))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, body))
}

// obscure masks feed content while the login gate is closed; the rows stay
// rendered underneath, just unreadable.
func obscure(line string) string {
	runes := []rune(line)
	for i, r := range runes {
		if r != ' ' {
			runes[i] = '░'
		}
	}
	return string(runes)
}

func (a *App) renderHistory() string {
	head := headingStyle.Render("지난 미션 히스토리")
	var rows []string
	for _, entry := range a.history {
		date := dimStyle.Render(entry.Date)
		winner := accentStyle.Render("Best Submission by @" + entry.Winner)
		rows = append(rows, lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("%s  %s", date, entry.Mission),
			"  "+winner,
		))
	}
	if len(rows) == 0 {
		rows = append(rows, dimStyle.Render("아직 종료된 미션이 없습니다."))
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, head, strings.Join(rows, "\n")))
}

func (a *App) renderCreateModal() string {
	head := lipgloss.NewStyle().Bold(true).Render("새로운 미션 생성하기")

	selected := "미션 날짜 선택"
	if a.selectedDate != "" {
		selected = "미션 날짜: " + accentStyle.Render(a.selectedDate)
	}
	cal := a.renderCalendar()

	genLabel := "[enter] ✨ 생성"
	if a.generating {
		genLabel = dimStyle.Render("생성중...")
	}
	sections := []string{
		head,
		"",
		a.focusLabel(focusCalendar, selected),
		cal,
		"",
		a.focusLabel(focusPrize, "상금"),
		a.prizeInput.View(),
		"",
		a.focusLabel(focusKeyword, "미션 아이디어 키워드") + "  " + genLabel,
		a.keywordInput.View(),
		"",
		a.focusLabel(focusContent, "미션 내용"),
		a.contentArea.View(),
		"",
		"[ctrl+s] 미션 생성하기    [esc] 닫기",
	}
	return panelStyle.Render(strings.Join(sections, "\n"))
}

func (a *App) focusLabel(slot int, label string) string {
	if a.createOpen && a.createFocus == slot {
		return headingStyle.Render("▸ " + label)
	}
	return dimStyle.Render("  " + label)
}

func (a *App) renderCalendar() string {
	today := calendar.Truncate(a.now())
	grid := calendar.MonthGrid(a.calAnchor, today, a.registry)
	year, month, _ := a.calAnchor.Date()
	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d년 %d월", year, int(month)))
	header := dimStyle.Render(" 일  월  화  수  목  금  토")

	cursorDate := a.calCursor.Format(calendar.ISODate)
	var rows []string
	row := make([]string, 0, 7)
	for i := 0; i < grid.LeadingBlanks; i++ {
		row = append(row, "    ")
	}
	for _, cell := range grid.Cells {
		day := fmt.Sprintf("%3d", cell.Day)
		switch {
		case cell.Date == a.selectedDate:
			day = selectedDayStyle.Render(day)
		case cell.Date == cursorDate:
			day = cursorDayStyle.Render(day)
		case !cell.Selectable:
			day = disabledDayStyle.Render(day)
		}
		row = append(row, day+" ")
		if len(row) == 7 {
			rows = append(rows, strings.Join(row, ""))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, ""))
	}
	hint := dimStyle.Render("←→↑↓ 이동 · [/] 월 전환 · enter 선택")
	lines := append([]string{title, header}, rows...)
	lines = append(lines, hint)
	return strings.Join(lines, "\n")
}

func (a *App) renderParticipateModal() string {
	head := lipgloss.NewStyle().Bold(true).Render("미션 참여하기")
	attachLabel := "파일 선택 (선택 사항)"
	descLabel := "간단한 텍스트"
	if a.participateFocus == focusAttachment {
		attachLabel = headingStyle.Render("▸ " + attachLabel)
		descLabel = dimStyle.Render("  " + descLabel)
	} else {
		attachLabel = dimStyle.Render("  " + attachLabel)
		descLabel = headingStyle.Render("▸ " + descLabel)
	}
	sections := []string{
		head,
		"",
		attachLabel,
		a.attachmentInput.View(),
		"",
		descLabel,
		a.descriptionArea.View(),
		"",
		"[ctrl+s] 제출하기    [esc] 닫기",
	}
	return panelStyle.Render(strings.Join(sections, "\n"))
}

func formatKRW(amount int) string {
	raw := fmt.Sprintf("%d", amount)
	if len(raw) <= 3 {
		return raw
	}
	var b strings.Builder
	lead := len(raw) % 3
	if lead > 0 {
		b.WriteString(raw[:lead])
	}
	for i := lead; i < len(raw); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(raw[i : i+3])
	}
	return b.String()
}
