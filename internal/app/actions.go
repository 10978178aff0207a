package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/credential"
	"github.com/sonic/sonic-task-hub/internal/export"
	"github.com/sonic/sonic-task-hub/internal/mailcap"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/ui/detail"
	"github.com/sonic/sonic-task-hub/internal/ui/eventdetail"
	"github.com/sonic/sonic-task-hub/internal/ui/eventform"
	"github.com/sonic/sonic-task-hub/internal/ui/exportform"
	"github.com/sonic/sonic-task-hub/internal/ui/itemform"
)

// mailboxPasswordKey is the keyring entry holding the IMAP password.
const mailboxPasswordKey = "mailbox-password"

// exportFetchSize is the page size used when fetching items for export.
// The backend caps pages, so one large page stands in for "everything
// matching the filter".
const exportFetchSize = 10000

// authResultMsg carries the outcome of a login or registration attempt.
type authResultMsg struct {
	user *model.User
	err  error
}

// categoriesLoadedMsg carries the category set shared with the forms.
type categoriesLoadedMsg struct {
	categories []model.Category
	err        error
}

// actionResultMsg carries the outcome of a mutation so the app can show
// a status line and refresh the affected view.
type actionResultMsg struct {
	status  string
	deleted bool
	err     error
}

// exportDoneMsg carries the outcome of an export run.
type exportDoneMsg struct {
	path  string
	count int
	err   error
}

// mailCaptureDoneMsg carries the outcome of a mailbox scan.
type mailCaptureDoneMsg struct {
	captured []mailcap.Captured
	err      error
}

func (m Model) login(username, password string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Login(context.Background(), username, password)
		return authResultMsg{user: user, err: err}
	}
}

func (m Model) register(req api.RegisterRequest) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		user, err := client.Register(context.Background(), req)
		return authResultMsg{user: user, err: err}
	}
}

func (m Model) loadCategories() tea.Cmd {
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		categories, err := client.GetCategories(context.Background(), userID)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

// loadItemDetail fetches an item, its subtasks, and, for habits, the
// progress history plus aggregate statistics. Falls back to the offline
// cache when the backend is unreachable.
func (m Model) loadItemDetail(itemID int64) tea.Cmd {
	client := m.client
	cache := m.cache
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()

		item, err := client.GetItem(ctx, userID, itemID)
		if err != nil {
			if api.IsUnreachable(err) && cache != nil {
				cached, cacheErr := cache.CachedItem(ctx, userID, itemID)
				if cacheErr == nil && cached != nil {
					return detail.LoadedMsg{Item: cached}
				}
			}
			return detail.LoadedMsg{Err: err}
		}

		// Sub-collections are best effort; the detail view renders
		// without them.
		subtasks, _ := client.GetSubtasks(ctx, userID, itemID)

		var stats *model.ProgressStats
		var history []model.Progress
		if item.Type == model.ItemTypeHabit {
			stats, _ = client.GetProgressStatistics(ctx, userID, itemID)
			history, _ = client.GetProgressForItem(ctx, userID, itemID)
		}

		return detail.LoadedMsg{
			Item:     item,
			Subtasks: subtasks,
			Stats:    stats,
			History:  history,
		}
	}
}

func (m Model) loadEventDetail(eventID int64) tea.Cmd {
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		event, err := client.GetEvent(context.Background(), userID, eventID)
		return eventdetail.LoadedMsg{Event: event, Err: err}
	}
}

func (m Model) completeItems(itemIDs []int64) tea.Cmd {
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()
		if len(itemIDs) == 1 {
			if _, err := client.CompleteItem(ctx, userID, itemIDs[0], nil); err != nil {
				return actionResultMsg{err: err}
			}
			return actionResultMsg{status: "item completed"}
		}
		if err := client.BulkCompleteItems(ctx, userID, itemIDs); err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{status: fmt.Sprintf("%d items completed", len(itemIDs))}
	}
}

func (m Model) snoozeItems(itemIDs []int64, until string) tea.Cmd {
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()
		if len(itemIDs) == 1 {
			if _, err := client.SnoozeItem(ctx, userID, itemIDs[0], until); err != nil {
				return actionResultMsg{err: err}
			}
		} else {
			if err := client.BulkSnoozeItems(ctx, userID, itemIDs, until); err != nil {
				return actionResultMsg{err: err}
			}
		}

		label := until
		if t, err := time.Parse(time.RFC3339, until); err == nil {
			label = t.Format("Jan 2 15:04")
		}
		return actionResultMsg{status: fmt.Sprintf("snoozed until %s", label)}
	}
}

func (m Model) deleteItems(itemIDs []int64) tea.Cmd {
	client := m.client
	cache := m.cache
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()
		if len(itemIDs) == 1 {
			if err := client.DeleteItem(ctx, userID, itemIDs[0]); err != nil {
				return actionResultMsg{err: err}
			}
		} else {
			if err := client.BulkDeleteItems(ctx, userID, itemIDs); err != nil {
				return actionResultMsg{err: err}
			}
		}

		if cache != nil {
			_ = cache.DeleteItems(ctx, userID, itemIDs)
		}

		status := "item deleted"
		if len(itemIDs) > 1 {
			status = fmt.Sprintf("%d items deleted", len(itemIDs))
		}
		return actionResultMsg{status: status, deleted: true}
	}
}

func (m Model) deleteEvent(eventID int64) tea.Cmd {
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		if err := client.DeleteEvent(context.Background(), userID, eventID); err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{status: "event deleted", deleted: true}
	}
}

func (m Model) saveItem(msg itemform.SubmitMsg) tea.Cmd {
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()
		if msg.Edit {
			item, err := client.UpdateItem(ctx, userID, msg.ItemID, msg.Request)
			if err != nil {
				return actionResultMsg{err: err}
			}
			return actionResultMsg{status: fmt.Sprintf("#%d updated", item.ItemNumber)}
		}
		item, err := client.CreateItem(ctx, userID, msg.Request)
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{status: fmt.Sprintf("#%d created", item.ItemNumber)}
	}
}

func (m Model) saveEvent(msg eventform.SubmitMsg) tea.Cmd {
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		ctx := context.Background()
		if msg.Edit {
			event, err := client.UpdateEvent(ctx, userID, msg.EventID, msg.Request)
			if err != nil {
				return actionResultMsg{err: err}
			}
			return actionResultMsg{status: fmt.Sprintf("event #%d updated", event.EventNumber)}
		}
		event, err := client.CreateEvent(ctx, userID, msg.Request)
		if err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{status: fmt.Sprintf("event #%d created", event.EventNumber)}
	}
}

func (m Model) logProgress(itemID int64, req api.ProgressRequest) tea.Cmd {
	client := m.client
	userID := m.session.UserID()
	return func() tea.Msg {
		if _, err := client.LogProgress(context.Background(), userID, itemID, req); err != nil {
			return actionResultMsg{err: err}
		}
		return actionResultMsg{status: "progress logged"}
	}
}

// runExport fetches everything matching the current server-side filters
// and writes it to a timestamped file in the working directory.
func (m Model) runExport(msg exportform.SubmitMsg) tea.Cmd {
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		// The fetch widens page/size to cover everything matching the
		// view's query; the exported filter object stays as requested.
		query := msg.Filters
		query.Page = 0
		query.Size = exportFetchSize

		page, err := client.GetItems(context.Background(), userID, query)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		items := export.Derive(page.Content, msg.Toggles, msg.Range)

		path := export.Filename(msg.Format)
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()

		switch msg.Format {
		case export.FormatJSON:
			err = export.WriteJSON(f, items, msg.Filters, time.Now())
		default:
			err = export.WriteCSV(f, items)
		}
		if err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path, count: len(items)}
	}
}

// captureMail scans the configured IMAP mailbox for flagged messages and
// files each one as a reminder.
func (m Model) captureMail() tea.Cmd {
	mailbox := m.cfg.Mailbox
	client := m.client
	userID := m.session.UserID()

	return func() tea.Msg {
		if mailbox.Host == "" {
			return mailCaptureDoneMsg{err: errors.New("no mailbox configured")}
		}

		password, err := credential.Get(mailboxPasswordKey)
		if err != nil || password == "" {
			return mailCaptureDoneMsg{err: errors.New("mailbox password not found in keyring")}
		}

		host, port, err := net.SplitHostPort(mailbox.Host)
		if err != nil {
			host, port = mailbox.Host, ""
		}

		capturer := mailcap.New(mailcap.Config{
			Host:     host,
			Port:     port,
			Username: mailbox.Username,
			Password: password,
			Folder:   mailbox.Folder,
		}, client, userID)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		captured, err := capturer.Capture(ctx)
		if err != nil {
			return mailCaptureDoneMsg{err: err}
		}
		return mailCaptureDoneMsg{captured: captured}
	}
}
