package viz

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/isinglab/internal/storage"
)

type browserKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Delete key.Binding
	Quit   key.Binding
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Delete, k.Quit}
}

func (k browserKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Delete, k.Quit}}
}

var browserKeys = browserKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete run")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// RunBrowser is a table view over the saved runs in a store.
type RunBrowser struct {
	store *storage.Store
	table table.Model
	help  help.Model
	keys  browserKeyMap
	err   error
}

// NewRunBrowser loads the catalog into a table.
func NewRunBrowser(store *storage.Store) (RunBrowser, error) {
	columns := []table.Column{
		{Title: "Run", Width: 24},
		{Title: "Size", Width: 6},
		{Title: "T", Width: 8},
		{Title: "h", Width: 6},
		{Title: "Steps", Width: 10},
		{Title: "|m|", Width: 8},
		{Title: "Energy", Width: 10},
	}

	b := RunBrowser{
		store: store,
		help:  help.New(),
		keys:  browserKeys,
	}

	rows, err := b.loadRows()
	if err != nil {
		return b, err
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(CurrentTheme.Background).
		Background(CurrentTheme.SpinUp).
		Bold(true)
	t.SetStyles(styles)

	b.table = t
	return b, nil
}

func (b *RunBrowser) loadRows() ([]table.Row, error) {
	records, err := b.store.List()
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, table.Row{
			rec.ID,
			fmt.Sprintf("%d", rec.Size),
			fmt.Sprintf("%.3f", rec.Temperature),
			fmt.Sprintf("%.2f", rec.H),
			fmt.Sprintf("%d", rec.Steps),
			fmt.Sprintf("%.3f", rec.FinalAbsMag),
			fmt.Sprintf("%.1f", rec.FinalEnergy),
		})
	}
	return rows, nil
}

func (b RunBrowser) Init() tea.Cmd { return nil }

func (b RunBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Delete):
			row := b.table.SelectedRow()
			if row != nil {
				if err := b.store.Delete(row[0]); err != nil {
					b.err = err
				} else if rows, err := b.loadRows(); err == nil {
					b.table.SetRows(rows)
				}
			}
			return b, nil
		}
	}
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b RunBrowser) View() string {
	view := headerStyle.Render("SAVED RUNS") + "\n" + b.table.View() + "\n"
	if b.err != nil {
		view += StatusPaused.Render(fmt.Sprintf("error: %v", b.err)) + "\n"
	}
	return view + b.help.View(b.keys)
}
