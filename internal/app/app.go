package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/session"
	"github.com/sonic/sonic-task-hub/internal/store"
	appsync "github.com/sonic/sonic-task-hub/internal/sync"
	"github.com/sonic/sonic-task-hub/internal/ui"
	"github.com/sonic/sonic-task-hub/internal/ui/categorymgr"
	"github.com/sonic/sonic-task-hub/internal/ui/command"
	"github.com/sonic/sonic-task-hub/internal/ui/dashboard"
	"github.com/sonic/sonic-task-hub/internal/ui/detail"
	"github.com/sonic/sonic-task-hub/internal/ui/eventdetail"
	"github.com/sonic/sonic-task-hub/internal/ui/eventform"
	"github.com/sonic/sonic-task-hub/internal/ui/eventlist"
	"github.com/sonic/sonic-task-hub/internal/ui/exportform"
	helpview "github.com/sonic/sonic-task-hub/internal/ui/help"
	"github.com/sonic/sonic-task-hub/internal/ui/itemform"
	"github.com/sonic/sonic-task-hub/internal/ui/itemlist"
	loginview "github.com/sonic/sonic-task-hub/internal/ui/login"
	"github.com/sonic/sonic-task-hub/internal/ui/progressform"
	"github.com/sonic/sonic-task-hub/internal/ui/snoozeform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLogin ViewState = iota
	ViewDashboard
	ViewList
	ViewDetail
	ViewEvents
	ViewEventDetail
	ViewCategories
	ViewItemForm
	ViewEventForm
	ViewSnoozeForm
	ViewProgressForm
	ViewExportForm
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, the
// session, and the background unsnooze poller.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	cfg          *model.AppConfig
	client       *api.Client
	cache        *store.SQLiteStore
	session      *session.Session
	keys         *keys.KeyMap
	poller       *appsync.Poller

	loginView    loginview.Model
	dashView     dashboard.Model
	itemList     itemlist.Model
	detailView   detail.Model
	eventList    eventlist.Model
	eventDetail  eventdetail.Model
	categoryView categorymgr.Model
	itemForm     itemform.Model
	eventForm    eventform.Model
	snoozeForm   snoozeform.Model
	progressForm progressform.Model
	exportForm   exportform.Model
	helpView     helpview.Model
	commandView  command.Model

	categories []model.Category
	ready      bool
	statusMsg  string

	// initCmd is assembled in New so that pointer-receiver setup on the
	// sub-views lands on the model instance the program actually keeps.
	initCmd tea.Cmd
}

// New creates the root application model. When the session already holds
// a user the app starts on the dashboard, otherwise on the login screen.
func New(
	cfg *model.AppConfig,
	client *api.Client,
	cache *store.SQLiteStore,
	sess *session.Session,
) Model {
	k := keys.DefaultKeyMap()

	m := Model{
		currentView: ViewLogin,
		cfg:         cfg,
		client:      client,
		cache:       cache,
		session:     sess,
		keys:        k,
		loginView:   loginview.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
	m.buildUserViews(80, 24)

	if sess.Active() {
		m.currentView = ViewDashboard
		m.initCmd = tea.Batch(
			m.dashView.Init(),
			m.poller.Start(),
			m.loadCategories(),
		)
	} else {
		m.initCmd = m.loginView.Start()
	}
	return m
}

// buildUserViews constructs the views that are scoped to the logged-in
// user. Called once at startup and again after a login changes the user.
func (m *Model) buildUserViews(width, height int) {
	var userID int64
	if m.session.Active() {
		userID = m.session.UserID()
	}

	pageSize := m.cfg.Display.PageSize
	m.dashView = dashboard.New(m.client, userID, m.keys, width, height)
	m.itemList = itemlist.New(m.client, m.cache, userID, m.keys, pageSize, width, height)
	m.detailView = detail.New(m.keys, width, height)
	m.eventList = eventlist.New(m.client, userID, m.keys, pageSize, width, height)
	m.eventDetail = eventdetail.New(m.keys, width, height)
	m.categoryView = categorymgr.New(m.client, userID, m.keys, width, height)
	m.itemForm = itemform.New(width, height)
	m.eventForm = eventform.New(width, height)
	m.snoozeForm = snoozeform.New(width, height)
	m.progressForm = progressform.New(width, height)
	m.exportForm = exportform.New(width, height)

	interval := time.Duration(m.cfg.UnsnoozeIntervalSec) * time.Second
	m.poller = appsync.New(m.client, userID, interval)
}

// Init starts the app: the login form when logged out, or the dashboard
// plus the unsnooze poller when a session was restored.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.dashView.SetSize(w, h)
		m.itemList.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.eventList.SetSize(w, h)
		m.eventDetail.SetSize(w, h)
		m.categoryView.SetSize(w, h)
		m.itemForm.SetSize(w, h)
		m.eventForm.SetSize(w, h)
		m.snoozeForm.SetSize(w, h)
		m.progressForm.SetSize(w, h)
		m.exportForm.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	case loginview.LoginMsg:
		return m, m.login(msg.Username, msg.Password)

	case loginview.RegisterMsg:
		return m, m.register(msg.Request)

	case authResultMsg:
		if msg.err != nil {
			return m, m.loginView.SetError(api.ErrorMessage(msg.err))
		}
		if err := m.session.Set(msg.user); err != nil {
			return m, m.loginView.SetError(err.Error())
		}
		m.buildUserViews(m.layout.ContentWidth(), m.layout.ContentHeight())
		m.currentView = ViewDashboard
		m.statusMsg = ""
		return m, tea.Batch(
			m.dashView.Init(),
			m.poller.Start(),
			m.loadCategories(),
		)

	case appsync.SweepResultMsg:
		if msg.Error != nil {
			m.statusMsg = "backend unreachable"
		} else if len(msg.Woken) > 0 {
			m.statusMsg = fmt.Sprintf("%d snoozed item(s) woke up", len(msg.Woken))
			return m, tea.Batch(m.itemList.Reload(), m.poller.WaitForNextResult())
		}
		return m, m.poller.WaitForNextResult()

	case categoriesLoadedMsg:
		if msg.err == nil {
			m.categories = msg.categories
		}
		return m, nil

	// Item list.

	case itemlist.SelectedItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detailView.SetLoading(true)
		return m, m.loadItemDetail(msg.ItemID)

	case itemlist.NewItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewItemForm
		m.itemForm.SetCategories(m.categories)
		return m, m.itemForm.StartCreate(nil)

	case itemlist.EditItemMsg:
		m.previousView = m.currentView
		m.currentView = ViewItemForm
		m.itemForm.SetCategories(m.categories)
		return m, m.itemForm.StartEdit(msg.Item)

	case itemlist.CompleteRequestMsg:
		m.itemList.ClearMarks()
		return m, m.completeItems(msg.ItemIDs)

	case itemlist.SnoozeRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewSnoozeForm
		return m, m.snoozeForm.Start(msg.ItemIDs)

	case itemlist.DeleteRequestMsg:
		m.itemList.ClearMarks()
		return m, m.deleteItems(msg.ItemIDs)

	case itemlist.ExportRequestMsg:
		m.previousView = m.currentView
		m.currentView = ViewExportForm
		return m, m.exportForm.Start(msg.Filters)

	// Item detail.

	case detail.LoadedMsg:
		if api.IsNotFound(msg.Err) {
			m.statusMsg = "item no longer exists"
			m.currentView = ViewList
			return m, m.itemList.Reload()
		}
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd

	case detail.BackMsg:
		m.currentView = ViewList
		return m, nil

	case detail.ActionMsg:
		return m.handleDetailAction(msg)

	case detail.LogProgressMsg:
		m.previousView = m.currentView
		m.currentView = ViewProgressForm
		return m, m.progressForm.Start(msg.Item)

	// Item form.

	case itemform.SubmitMsg:
		m.currentView = ViewList
		return m, m.saveItem(msg)

	case itemform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Snooze picker.

	case snoozeform.SubmitMsg:
		m.currentView = m.previousView
		return m, m.snoozeItems(msg.ItemIDs, msg.Until)

	case snoozeform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Progress form.

	case progressform.SubmitMsg:
		m.currentView = m.previousView
		return m, m.logProgress(msg.ItemID, msg.Request)

	case progressform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Export form.

	case exportform.SubmitMsg:
		m.currentView = m.previousView
		return m, m.runExport(msg)

	case exportform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.statusMsg = "export failed: " + api.ErrorMessage(msg.err)
		} else {
			m.statusMsg = fmt.Sprintf("exported %d items to %s", msg.count, msg.path)
		}
		return m, nil

	// Events.

	case eventlist.SelectedEventMsg:
		m.previousView = m.currentView
		m.currentView = ViewEventDetail
		m.eventDetail.SetLoading(true)
		return m, m.loadEventDetail(msg.EventID)

	case eventlist.NewEventMsg:
		m.previousView = m.currentView
		m.currentView = ViewEventForm
		m.eventForm.SetCategories(m.categories)
		return m, m.eventForm.StartCreate()

	case eventlist.EditEventMsg:
		m.previousView = m.currentView
		m.currentView = ViewEventForm
		m.eventForm.SetCategories(m.categories)
		return m, m.eventForm.StartEdit(msg.Event)

	case eventlist.DeleteEventMsg:
		return m, m.deleteEvent(msg.EventID)

	case eventdetail.LoadedMsg:
		if api.IsNotFound(msg.Err) {
			m.statusMsg = "event no longer exists"
			m.currentView = ViewEvents
			return m, m.eventList.Reload()
		}
		var cmd tea.Cmd
		m.eventDetail, cmd = m.eventDetail.Update(msg)
		return m, cmd

	case eventdetail.BackMsg:
		m.currentView = ViewEvents
		return m, nil

	case eventdetail.ActionMsg:
		return m.handleEventAction(msg)

	case eventform.SubmitMsg:
		m.currentView = ViewEvents
		return m, m.saveEvent(msg)

	case eventform.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	// Categories.

	case categorymgr.CloseMsg:
		m.currentView = m.previousView
		return m, nil

	case categorymgr.ChangedMsg:
		return m, m.loadCategories()

	// Dashboard.

	case dashboard.OpenListMsg:
		m.previousView = m.currentView
		m.currentView = ViewList
		return m, m.itemList.Reload()

	case dashboard.OpenEventsMsg:
		m.previousView = m.currentView
		m.currentView = ViewEvents
		return m, m.eventList.Reload()

	// Action results.

	case actionResultMsg:
		return m.handleActionResult(msg)

	case mailCaptureDoneMsg:
		if msg.err != nil {
			m.statusMsg = "mail capture failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("filed %d reminder(s) from mail", len(msg.captured))
		return m, m.itemList.Reload()

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		// Any keystroke dismisses a lingering status message.
		m.statusMsg = ""
		if handled, mdl, cmd := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	// Delegate to the active sub-view.
	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. It reports
// whether the key was consumed.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.poller.Stop()
		return true, m, tea.Quit

	case "q":
		if m.browsing() && !m.searchActive() {
			m.poller.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		if m.browsing() && !m.searchActive() {
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return true, m, nil
		}

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, m, nil
		}
		if m.browsing() && !m.searchActive() {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return true, m, m.commandView.Focus()
		}

	case "d":
		if m.browsing() && m.currentView != ViewDashboard && !m.searchActive() {
			m.previousView = m.currentView
			m.currentView = ViewDashboard
			return true, m, m.dashView.Reload()
		}

	case "v":
		if (m.currentView == ViewDashboard || m.currentView == ViewList) && !m.searchActive() {
			m.previousView = m.currentView
			m.currentView = ViewEvents
			return true, m, m.eventList.Reload()
		}

	case "g":
		if (m.currentView == ViewDashboard || m.currentView == ViewList) && !m.searchActive() {
			m.previousView = m.currentView
			m.currentView = ViewCategories
			return true, m, m.categoryView.Init()
		}

	case "n":
		// New subtask under the item open in the detail view.
		if m.currentView == ViewDetail {
			if item := m.detailView.Item(); item != nil {
				parentID := item.ID
				m.previousView = m.currentView
				m.currentView = ViewItemForm
				m.itemForm.SetCategories(m.categories)
				return true, m, m.itemForm.StartCreate(&parentID)
			}
		}
	}

	return false, m, nil
}

// browsing reports whether the current view is a read-only browse screen
// where global shortcuts are safe to intercept.
func (m Model) browsing() bool {
	switch m.currentView {
	case ViewDashboard, ViewList, ViewDetail, ViewEvents, ViewEventDetail:
		return true
	}
	return false
}

// searchActive reports whether a list search input currently has focus.
func (m Model) searchActive() bool {
	switch m.currentView {
	case ViewList:
		return m.itemList.SearchActive()
	case ViewEvents:
		return m.eventList.SearchActive()
	}
	return false
}

// handleDetailAction runs an action requested from the item detail view.
func (m Model) handleDetailAction(msg detail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case "complete":
		return m, m.completeItems([]int64{msg.ItemID})

	case "snooze":
		m.previousView = m.currentView
		m.currentView = ViewSnoozeForm
		return m, m.snoozeForm.Start([]int64{msg.ItemID})

	case "edit":
		if item := m.detailView.Item(); item != nil {
			m.previousView = m.currentView
			m.currentView = ViewItemForm
			m.itemForm.SetCategories(m.categories)
			return m, m.itemForm.StartEdit(*item)
		}

	case "delete":
		m.currentView = ViewList
		return m, m.deleteItems([]int64{msg.ItemID})
	}
	return m, nil
}

// handleEventAction runs an action requested from the event detail view.
func (m Model) handleEventAction(msg eventdetail.ActionMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case "edit":
		if event := m.eventDetail.Event(); event != nil {
			m.previousView = m.currentView
			m.currentView = ViewEventForm
			m.eventForm.SetCategories(m.categories)
			return m, m.eventForm.StartEdit(*event)
		}

	case "delete":
		m.currentView = ViewEvents
		return m, m.deleteEvent(msg.EventID)
	}
	return m, nil
}

// handleActionResult refreshes the relevant view after a mutation.
func (m Model) handleActionResult(msg actionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = api.ErrorMessage(msg.err)
		return m, nil
	}
	m.statusMsg = msg.status

	var cmds []tea.Cmd
	switch m.currentView {
	case ViewDetail:
		// Refresh the open item unless it was just deleted.
		if item := m.detailView.Item(); item != nil && !msg.deleted {
			cmds = append(cmds, m.loadItemDetail(item.ID))
		} else {
			m.currentView = ViewList
		}
		cmds = append(cmds, m.itemList.Reload())
	case ViewEvents, ViewEventDetail:
		m.currentView = ViewEvents
		cmds = append(cmds, m.eventList.Reload())
	case ViewDashboard:
		cmds = append(cmds, m.dashView.Reload())
	default:
		cmds = append(cmds, m.itemList.Reload())
	}
	return m, tea.Batch(cmds...)
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "refresh", "sync":
		return m, tea.Batch(m.poller.TriggerSweep(), m.itemList.Reload())
	case "quit", "q":
		m.poller.Stop()
		return m, tea.Quit
	case "dashboard", "home":
		m.currentView = ViewDashboard
		return m, m.dashView.Reload()
	case "items", "list":
		m.currentView = ViewList
		return m, m.itemList.Reload()
	case "events":
		m.currentView = ViewEvents
		return m, m.eventList.Reload()
	case "categories":
		m.currentView = ViewCategories
		return m, m.categoryView.Init()
	case "new item", "new":
		m.previousView = m.currentView
		m.currentView = ViewItemForm
		m.itemForm.SetCategories(m.categories)
		return m, m.itemForm.StartCreate(nil)
	case "new event":
		m.previousView = m.currentView
		m.currentView = ViewEventForm
		m.eventForm.SetCategories(m.categories)
		return m, m.eventForm.StartCreate()
	case "export":
		m.previousView = m.currentView
		m.currentView = ViewExportForm
		return m, m.exportForm.Start(m.itemList.Filters())
	case "mail", "capture mail":
		m.statusMsg = "scanning mailbox..."
		return m, m.captureMail()
	case "logout":
		m.poller.Stop()
		_ = m.session.Clear()
		m.currentView = ViewLogin
		return m, m.loginView.Start()
	default:
		m.statusMsg = fmt.Sprintf("unknown command: %s", cmd)
		return m, nil
	}
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case ViewDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case ViewList:
		m.itemList, cmd = m.itemList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewEvents:
		m.eventList, cmd = m.eventList.Update(msg)
	case ViewEventDetail:
		m.eventDetail, cmd = m.eventDetail.Update(msg)
	case ViewCategories:
		m.categoryView, cmd = m.categoryView.Update(msg)
	case ViewItemForm:
		m.itemForm, cmd = m.itemForm.Update(msg)
	case ViewEventForm:
		m.eventForm, cmd = m.eventForm.Update(msg)
	case ViewSnoozeForm:
		m.snoozeForm, cmd = m.snoozeForm.Update(msg)
	case ViewProgressForm:
		m.progressForm, cmd = m.progressForm.Update(msg)
	case ViewExportForm:
		m.exportForm, cmd = m.exportForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.currentView == ViewLogin {
		return m.loginView.View()
	}

	headerTitle := "Sonic Task Hub"
	if user := m.session.User(); user != nil {
		headerTitle = fmt.Sprintf("Sonic Task Hub · %s", user.Name())
	}
	header := m.layout.RenderHeader(headerTitle, m.sweepStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDashboard:
		return m.dashView.View()
	case ViewList:
		return m.itemList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewEvents:
		return m.eventList.View()
	case ViewEventDetail:
		return m.eventDetail.View()
	case ViewCategories:
		return m.categoryView.View()
	case ViewItemForm:
		return m.itemForm.View()
	case ViewEventForm:
		return m.eventForm.View()
	case ViewSnoozeForm:
		return m.snoozeForm.View()
	case ViewProgressForm:
		return m.progressForm.View()
	case ViewExportForm:
		return m.exportForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// sweepStatus returns a short string describing the unsnooze sweep state.
func (m Model) sweepStatus() string {
	status := m.poller.Status()
	switch status.State {
	case appsync.SweepRunning:
		return "sweeping"
	case appsync.SweepError:
		return "⚠ offline"
	}
	if status.LastSweep.IsZero() {
		return "idle"
	}
	return "idle · swept " + status.LastSweep.Format("15:04")
}

// keyHints returns keyboard shortcut hints for the status bar. A pending
// status message takes precedence.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close | enter execute | esc back"
	case ViewDashboard:
		return "enter items | v events | g categories | r refresh | q quit"
	case ViewDetail:
		return "c complete | z snooze | e edit | x delete | n subtask | esc back"
	case ViewEvents:
		return "n new | e edit | x delete | u upcoming/all | esc back"
	case ViewEventDetail:
		return "e edit | x delete | esc back"
	case ViewCategories:
		return "n new | e edit | d delete | esc back"
	case ViewItemForm, ViewEventForm, ViewSnoozeForm, ViewProgressForm, ViewExportForm:
		return "enter submit | esc cancel"
	default:
		return "? help | : command | n new | / search | space mark | 1/2/3 type | tab sort"
	}
}
