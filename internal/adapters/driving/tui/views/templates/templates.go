// Package templates provides the template library view for the TUI.
package templates

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/list"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/components/status"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/keymap"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/messages"
	"github.com/lexdraft-labs/lexdraft-cli/internal/adapters/driving/tui/styles"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/domain"
	"github.com/lexdraft-labs/lexdraft-cli/internal/core/ports/driving"
)

// listPageSize bounds how many templates the view fetches at once.
const listPageSize = 100

// View lists the backend template library with a detail pane.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.ItemList
	statusbar *status.Bar

	templateService driving.TemplateService
	ctx             context.Context

	width  int
	height int
	ready  bool
	err    error
	detail *domain.Template
}

// NewView creates a new templates view.
func NewView(s *styles.Styles, km *keymap.KeyMap, templateService driving.TemplateService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		list:            list.NewItemList(s, "Templates"),
		statusbar:       status.NewBar(s, km),
		templateService: templateService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the template list.
func (v *View) Init() tea.Cmd {
	return v.loadTemplates()
}

// Update handles messages for the templates view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.TemplatesLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.err = nil
		items := make([]list.Item, 0, len(msg.Page.Items))
		for _, t := range msg.Page.Items {
			items = append(items, list.Item{
				ID:     t.ID,
				Title:  t.Title,
				Badge:  t.DocType,
				Detail: templateDetailLine(t),
			})
		}
		v.list.SetItems(items)
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("%d of %d templates", len(msg.Page.Items), msg.Page.Total))
		return v, nil

	case messages.TemplateDetailLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.detail = msg.Template
		return v, nil

	case messages.TemplateDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("Template deleted")
		return v, v.loadTemplates()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// templateDetailLine builds the muted second line for a list entry.
func templateDetailLine(t domain.TemplateSummary) string {
	parts := make([]string, 0, 2)
	if t.Jurisdiction != "" {
		parts = append(parts, t.Jurisdiction)
	}
	if len(t.Tags) > 0 {
		parts = append(parts, strings.Join(t.Tags, ", "))
	}
	return strings.Join(parts, " | ")
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		if v.detail != nil {
			v.detail = nil
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewChat}
		}
	case tea.KeyUp:
		v.list.MoveUp()
		return v, nil
	case tea.KeyDown:
		v.list.MoveDown()
		return v, nil
	case tea.KeyEnter:
		if item := v.list.SelectedItem(); item != nil {
			return v, v.loadDetail(item.ID)
		}
		return v, nil
	default:
		// Handle other keys
	}

	switch msg.String() {
	case "k":
		v.list.MoveUp()
	case "j":
		v.list.MoveDown()
	case "d":
		if item := v.list.SelectedItem(); item != nil {
			return v, v.deleteTemplate(item.ID)
		}
	case "r":
		return v, v.loadTemplates()
	}

	return v, nil
}

// loadTemplates fetches one page of the template library.
func (v *View) loadTemplates() tea.Cmd {
	return func() tea.Msg {
		page, err := v.templateService.List(v.ctx, 0, listPageSize)
		return messages.TemplatesLoaded{Page: page, Err: err}
	}
}

// loadDetail fetches full detail for one template.
func (v *View) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		tpl, err := v.templateService.Get(v.ctx, id)
		return messages.TemplateDetailLoaded{Template: tpl, Err: err}
	}
}

// deleteTemplate removes a template from the backend.
func (v *View) deleteTemplate(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.templateService.Delete(v.ctx, id)
		return messages.TemplateDeleted{ID: id, Err: err}
	}
}

// View renders the templates view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("Template Library"), "")

	if v.detail != nil {
		sections = append(sections, v.renderDetail(v.detail))
	} else if v.list.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("No templates yet. Upload a PDF or DOCX to create one."))
	} else {
		sections = append(sections, v.list.View())
	}

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderDetail renders the template detail pane.
func (v *View) renderDetail(tpl *domain.Template) string {
	lines := make([]string, 0, 12)
	lines = append(lines, v.styles.Subtitle.Render(tpl.Title))

	meta := templateDetailLine(tpl.TemplateSummary)
	if meta != "" {
		lines = append(lines, v.styles.Muted.Render(meta))
	}
	lines = append(lines, "")

	if len(tpl.Variables) > 0 {
		lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("Variables (%d)", len(tpl.Variables))))
		for _, q := range tpl.Variables {
			marker := ""
			if q.Required {
				marker = " (required)"
			}
			lines = append(lines, v.styles.Normal.Render(fmt.Sprintf("  %s%s", q.Key, marker)))
		}
		lines = append(lines, "")
	}

	// Body preview, clipped to the pane.
	bodyLines := strings.Split(tpl.Body, "\n")
	visible := v.height - len(lines) - 6
	if visible < 3 {
		visible = 3
	}
	if len(bodyLines) > visible {
		bodyLines = append(bodyLines[:visible], "...")
	}
	lines = append(lines, v.styles.Normal.Render(strings.Join(bodyLines, "\n")))

	return strings.Join(lines, "\n")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Selected returns the selected template index.
func (v *View) Selected() int {
	return v.list.Selected()
}

// Count returns the number of listed templates.
func (v *View) Count() int {
	return v.list.Count()
}

// DetailOpen reports whether the detail pane is showing.
func (v *View) DetailOpen() bool {
	return v.detail != nil
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset closes the detail pane and clears transient state.
func (v *View) Reset() {
	v.detail = nil
	v.err = nil
	v.statusbar.Clear()
}
