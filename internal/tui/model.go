package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/parallax/internal/pbx"
)

// ViewDepth tracks the navigation level in the browser.
type ViewDepth int

const (
	// DepthKinds shows the discriminator table (top level).
	DepthKinds ViewDepth = iota
	// DepthObjects shows the objects of the selected discriminator.
	DepthObjects
	// DepthFields shows one object's fields in the detail panel.
	DepthFields
)

// KindEntry is one discriminator row: the isa plus the object IDs carrying it.
type KindEntry struct {
	Isa     string
	IDs     []pbx.ObjectID
	Unknown bool
}

// Model is the root BubbleTea model for the project browser.
type Model struct {
	Source  string
	Project *pbx.Project
	Kinds   []KindEntry

	Depth        ViewDepth
	KindCursor   int
	ObjectCursor int

	Detail DetailPanel
	Keys   KeyMap
	Width  int
	Height int
}

// NewModel builds a browser over a decoded project. Discriminators and the
// IDs under them are sorted so navigation order is stable.
func NewModel(source string, project *pbx.Project) Model {
	return Model{
		Source:  source,
		Project: project,
		Kinds:   buildKinds(project),
		Detail:  NewDetailPanel(80, 10),
		Keys:    DefaultKeyMap(),
	}
}

// buildKinds groups the object table by discriminator.
func buildKinds(p *pbx.Project) []KindEntry {
	byIsa := make(map[string]*KindEntry)
	for id, obj := range p.Objects {
		isa := string(obj.Type())
		e, ok := byIsa[isa]
		if !ok {
			_, unknown := obj.(*pbx.UnknownObject)
			e = &KindEntry{Isa: isa, Unknown: unknown}
			byIsa[isa] = e
		}
		e.IDs = append(e.IDs, id)
	}

	kinds := make([]KindEntry, 0, len(byIsa))
	for _, e := range byIsa {
		sort.Slice(e.IDs, func(i, j int) bool { return e.IDs[i] < e.IDs[j] })
		kinds = append(kinds, *e)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Isa < kinds[j].Isa })
	return kinds
}

// Init implements tea.Model. The browser is static, so no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Detail.SetSize(msg.Width-4, m.detailHeight())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Enter):
		m.drillDown()

	case key.Matches(msg, m.Keys.Back):
		m.drillUp()

	case key.Matches(msg, m.Keys.Up):
		if m.Depth == DepthFields {
			m.Detail.Update(msg)
		} else {
			m.moveUp()
		}

	case key.Matches(msg, m.Keys.Down):
		if m.Depth == DepthFields {
			m.Detail.Update(msg)
		} else {
			m.moveDown()
		}

	default:
		// Page/home/end scrolling inside the field panel.
		if m.Depth == DepthFields {
			m.Detail.Update(msg)
		}
	}
	return m, nil
}

// moveUp moves the active cursor up, wrapping at the top.
func (m *Model) moveUp() {
	switch m.Depth {
	case DepthKinds:
		m.KindCursor = wrapDec(m.KindCursor, len(m.Kinds))
	case DepthObjects:
		if k := m.selectedKind(); k != nil {
			m.ObjectCursor = wrapDec(m.ObjectCursor, len(k.IDs))
		}
	}
}

// moveDown moves the active cursor down, wrapping at the bottom.
func (m *Model) moveDown() {
	switch m.Depth {
	case DepthKinds:
		m.KindCursor = wrapInc(m.KindCursor, len(m.Kinds))
	case DepthObjects:
		if k := m.selectedKind(); k != nil {
			m.ObjectCursor = wrapInc(m.ObjectCursor, len(k.IDs))
		}
	}
}

func wrapDec(cursor, n int) int {
	if n == 0 {
		return 0
	}
	cursor--
	if cursor < 0 {
		cursor = n - 1
	}
	return cursor
}

func wrapInc(cursor, n int) int {
	if n == 0 {
		return 0
	}
	cursor++
	if cursor >= n {
		cursor = 0
	}
	return cursor
}

// drillDown navigates deeper into the hierarchy.
func (m *Model) drillDown() {
	switch m.Depth {
	case DepthKinds:
		if len(m.Kinds) == 0 {
			return
		}
		m.Depth = DepthObjects
		m.ObjectCursor = 0

	case DepthObjects:
		id, obj, ok := m.selectedObject()
		if !ok {
			return
		}
		m.Depth = DepthFields
		m.Detail.SetContent(fmt.Sprintf("%s · %s", obj.Type(), id), FormatObject(obj))
	}
}

// drillUp navigates back up the hierarchy.
func (m *Model) drillUp() {
	switch m.Depth {
	case DepthFields:
		m.Depth = DepthObjects
	case DepthObjects:
		m.Depth = DepthKinds
		m.ObjectCursor = 0
	}
}

// selectedKind returns the discriminator row under the kind cursor.
func (m *Model) selectedKind() *KindEntry {
	if len(m.Kinds) == 0 {
		return nil
	}
	return &m.Kinds[m.KindCursor]
}

// selectedObject returns the object under the object cursor.
func (m *Model) selectedObject() (pbx.ObjectID, pbx.Object, bool) {
	k := m.selectedKind()
	if k == nil || len(k.IDs) == 0 {
		return "", nil, false
	}
	id := k.IDs[m.ObjectCursor]
	obj, ok := m.Project.Objects[id]
	return id, obj, ok
}

// View renders the full browser.
func (m Model) View() string {
	if m.Width == 0 {
		return "initializing..."
	}

	var sections []string
	sections = append(sections, m.renderStatusBar())
	if m.Depth > DepthKinds {
		sections = append(sections, m.renderBreadcrumb())
	}
	sections = append(sections, m.renderMainView())
	sections = append(sections, m.buildFooter().View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the top bar with source and table stats.
func (m Model) renderStatusBar() string {
	parts := []string{
		styleStatusLabel.Render("parallax"),
		styleStatusValue.Render(TruncateWithEllipsis(m.Source, m.Width/2)),
		styleStatusMeta.Render(fmt.Sprintf("%d objects · v%s", len(m.Project.Objects), m.Project.ObjectVersion)),
	}
	return styleStatusBar.Width(m.Width).Render(strings.Join(parts, "  "))
}

// renderBreadcrumb renders the navigation path for drill-down.
func (m Model) renderBreadcrumb() string {
	parts := []string{"kinds"}
	if k := m.selectedKind(); k != nil && m.Depth >= DepthObjects {
		parts = append(parts, k.Isa)
	}
	if m.Depth == DepthFields {
		if id, _, ok := m.selectedObject(); ok {
			parts = append(parts, string(id))
		}
	}
	sep := styleBreadcrumbSep.Render(" › ")
	return styleBreadcrumb.Width(m.Width).Render(strings.Join(parts, sep))
}

// renderMainView renders the appropriate view for the current depth.
func (m Model) renderMainView() string {
	switch m.Depth {
	case DepthKinds:
		return m.renderKindList()
	case DepthObjects:
		return m.renderObjectList()
	default:
		return m.Detail.View()
	}
}

// renderKindList renders the discriminator table.
func (m Model) renderKindList() string {
	if len(m.Kinds) == 0 {
		return styleDetailDim.Render("  (no objects)")
	}

	start, end := listWindow(m.KindCursor, len(m.Kinds), m.listHeight())

	var b strings.Builder
	for i := start; i < end; i++ {
		k := m.Kinds[i]
		indicator := "  "
		rowStyle := styleRowNormal
		if k.Unknown {
			rowStyle = styleRowUnknown
		}
		if i == m.KindCursor {
			indicator = styleSelectionIndicator.Render(selectionIndicator) + " "
			rowStyle = styleRowSelected
		}
		b.WriteString(indicator)
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-44s", TruncateWithEllipsis(k.Isa, 44))))
		b.WriteString(styleRowCount.Render(fmt.Sprintf("%4d", len(k.IDs))))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderObjectList renders the IDs under the selected discriminator.
func (m Model) renderObjectList() string {
	k := m.selectedKind()
	if k == nil || len(k.IDs) == 0 {
		return styleDetailDim.Render("  (no objects)")
	}

	start, end := listWindow(m.ObjectCursor, len(k.IDs), m.listHeight())

	var b strings.Builder
	for i := start; i < end; i++ {
		id := k.IDs[i]
		indicator := "  "
		rowStyle := styleRowNormal
		if i == m.ObjectCursor {
			indicator = styleSelectionIndicator.Render(selectionIndicator) + " "
			rowStyle = styleRowSelected
		}
		b.WriteString(indicator)
		b.WriteString(rowStyle.Render(fmt.Sprintf("%-26s", string(id))))
		if obj, ok := m.Project.Objects[id]; ok {
			if label := displayName(obj); label != "" {
				b.WriteString(" ")
				b.WriteString(styleDetailDim.Render(TruncateWithEllipsis(label, m.Width-30)))
			}
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// listWindow clips a list to the visible row budget, keeping the cursor in view.
func listWindow(cursor, total, visible int) (int, int) {
	if visible <= 0 || total <= visible {
		return 0, total
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start > total-visible {
		start = total - visible
	}
	return start, start + visible
}

// listHeight is the row budget for list views after fixed chrome.
func (m Model) listHeight() int {
	used := 4 // status bar, breadcrumb, footer border, footer line
	h := m.Height - used
	if h < 1 {
		return 1
	}
	return h
}

// detailHeight computes available height for the field panel.
func (m Model) detailHeight() int {
	used := 8 // chrome plus panel border and title
	h := m.Height - used
	if h < 3 {
		return 3
	}
	return h
}

// buildFooter creates the footer with bindings for the current depth.
func (m Model) buildFooter() Footer {
	f := Footer{Width: m.Width}
	switch m.Depth {
	case DepthKinds:
		f.Bindings = BrowseFooterBindings(m.Keys)
	case DepthObjects:
		f.Bindings = DrilledFooterBindings(m.Keys)
	default:
		f.Bindings = DetailFooterBindings(m.Keys)
	}
	return f
}
