package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/emirirr/terapi/internal/cli/formatter"
	"github.com/emirirr/terapi/internal/domain"
)

// historyLoadedMsg signals that history rows have been loaded.
type historyLoadedMsg struct {
	records []*domain.SessionRecord
	owned   []*domain.OwnedSessionRecord
	err     error
}

// historyView shows the session history, newest first. The admin
// variant joins each row with the owning user's name.
type historyView struct {
	state      *SharedState
	withOwners bool

	loading bool
	err     error
	records []*domain.SessionRecord
	owned   []*domain.OwnedSessionRecord
}

func newHistoryView(state *SharedState, withOwners bool) *historyView {
	return &historyView{state: state, withOwners: withOwners, loading: true}
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }

func (v *historyView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *historyView) Init() tea.Cmd {
	return v.loadData()
}

func (v *historyView) loadData() tea.Cmd {
	app := v.state.App
	withOwners := v.withOwners
	return func() tea.Msg {
		ctx := context.Background()
		if withOwners {
			owned, err := app.History.ListWithOwners(ctx)
			return historyLoadedMsg{owned: owned, err: err}
		}
		records, err := app.History.List(ctx)
		return historyLoadedMsg{records: records, err: err}
	}
}

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.records = msg.records
		v.owned = msg.owned
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadData()

	case tea.KeyMsg:
		if msg.String() == "r" {
			v.loading = true
			return v, v.loadData()
		}
	}
	return v, nil
}

func (v *historyView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	var b strings.Builder
	b.WriteString("\n")

	if v.withOwners {
		if len(v.owned) == 0 {
			b.WriteString("  " + formatter.Dim("No sessions recorded yet."))
			return b.String()
		}
		rows := make([][]string, 0, len(v.owned))
		for _, r := range v.owned {
			owner := formatter.Dim("-")
			if r.UserID != nil {
				owner = fmt.Sprintf("%s %s", r.OwnerName, r.OwnerSurname)
			}
			rows = append(rows, ownedHistoryRow(r, owner))
		}
		b.WriteString(indent(formatter.RenderTable(
			[]string{"ID", "OWNER", "THERAPY", "MODE", "DURATION", "STATUS", "WHEN"},
			rows, []formatter.ColumnAlignment{formatter.AlignRight})))
		return b.String()
	}

	if len(v.records) == 0 {
		b.WriteString("  " + formatter.Dim("No sessions recorded yet."))
		return b.String()
	}
	rows := make([][]string, 0, len(v.records))
	for _, r := range v.records {
		rows = append(rows, historyRow(r))
	}
	b.WriteString(indent(formatter.RenderTable(
		[]string{"ID", "THERAPY", "MODE", "DURATION", "STATUS", "WHEN"},
		rows, []formatter.ColumnAlignment{formatter.AlignRight})))
	return b.String()
}

func historyRow(r *domain.SessionRecord) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		formatter.TherapyBadge(r.TherapyType),
		r.Mode.Label(),
		formatter.FormatSeconds(r.DurationSeconds),
		formatter.StatusPill(r.Status),
		formatter.HumanTimestamp(r.Timestamp.Local()),
	}
}

func ownedHistoryRow(r *domain.OwnedSessionRecord, owner string) []string {
	return []string{
		strconv.FormatInt(r.ID, 10),
		owner,
		formatter.TherapyBadge(r.TherapyType),
		r.Mode.Label(),
		formatter.FormatSeconds(r.DurationSeconds),
		formatter.StatusPill(r.Status),
		formatter.HumanTimestamp(r.Timestamp.Local()),
	}
}

// indent prefixes every line of block with two spaces.
func indent(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
