// Package mailcap turns flagged mail into reminder items. It scans an
// IMAP folder for flagged, unanswered messages, creates one reminder
// per message through the backend, and marks the message answered so
// the next scan skips it.
package mailcap

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/charset"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// Config holds the IMAP connection settings for mail capture.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	Folder   string
	StartTLS bool
}

// Captured describes one message that became a reminder.
type Captured struct {
	UID     uint32
	Subject string
	From    string
	Item    *model.Item
}

// Capturer connects to IMAP and files flagged messages as reminders.
type Capturer struct {
	cfg    Config
	client *api.Client
	userID int64
}

// New creates a Capturer creating reminders on behalf of the given user.
func New(cfg Config, client *api.Client, userID int64) *Capturer {
	if cfg.Folder == "" {
		cfg.Folder = "INBOX"
	}
	if cfg.Port == "" {
		cfg.Port = "993"
	}
	return &Capturer{cfg: cfg, client: client, userID: userID}
}

// connect dials the IMAP server and authenticates. The caller must
// Logout the returned client.
func (c *Capturer) connect() (*imapclient.Client, error) {
	addr := c.cfg.Host + ":" + c.cfg.Port

	// Decode non-UTF-8 envelope headers so subjects survive intact.
	options := &imapclient.Options{
		WordDecoder: &mime.WordDecoder{CharsetReader: charset.Reader},
	}

	var client *imapclient.Client
	var err error

	if c.cfg.StartTLS {
		client, err = imapclient.DialStartTLS(addr, options)
	} else {
		client, err = imapclient.DialTLS(addr, options)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("authenticating %s: %w", c.cfg.Username, err)
	}

	return client, nil
}

// Capture scans the configured folder once and creates a reminder for
// every flagged message not yet captured. It returns the captured
// messages in mailbox order.
func (c *Capturer) Capture(ctx context.Context) ([]Captured, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select(c.cfg.Folder, nil).Wait(); err != nil {
		return nil, fmt.Errorf("selecting %s: %w", c.cfg.Folder, err)
	}

	// Flagged but not yet answered; the answered flag marks messages a
	// previous scan already filed.
	criteria := &imap.SearchCriteria{
		Flag:    []imap.Flag{imap.FlagFlagged},
		NotFlag: []imap.Flag{imap.FlagAnswered},
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching flagged messages: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	uidSet := imap.UIDSetNum(uids...)
	fetchOpts := &imap.FetchOptions{
		Envelope: true,
		UID:      true,
	}

	fetchCmd := client.Fetch(uidSet, fetchOpts)

	type pending struct {
		uid     uint32
		subject string
		from    string
	}
	var messages []pending

	for {
		msg := fetchCmd.Next()
		if msg == nil {
			break
		}
		buf, err := msg.Collect()
		if err != nil {
			continue
		}
		p := pending{uid: uint32(buf.UID)}
		if buf.Envelope != nil {
			p.subject = buf.Envelope.Subject
			if len(buf.Envelope.From) > 0 {
				from := buf.Envelope.From[0]
				if from.Name != "" {
					p.from = from.Name
				} else {
					p.from = from.Addr()
				}
			}
		}
		messages = append(messages, p)
	}
	if err := fetchCmd.Close(); err != nil {
		return nil, fmt.Errorf("fetching flagged messages: %w", err)
	}

	var captured []Captured
	for _, msg := range messages {
		item, err := c.fileReminder(ctx, msg.subject, msg.from)
		if err != nil {
			// Leave the message flagged so the next scan retries it.
			return captured, fmt.Errorf(
				"filing reminder for message %d: %w", msg.uid, err,
			)
		}

		markSet := imap.UIDSetNum(imap.UID(msg.uid))
		storeCmd := client.Store(markSet, &imap.StoreFlags{
			Op:     imap.StoreFlagsAdd,
			Silent: true,
			Flags:  []imap.Flag{imap.FlagAnswered},
		}, nil)
		if err := storeCmd.Close(); err != nil {
			return captured, fmt.Errorf(
				"marking message %d captured: %w", msg.uid, err,
			)
		}

		captured = append(captured, Captured{
			UID:     msg.uid,
			Subject: msg.subject,
			From:    msg.from,
			Item:    item,
		})
	}

	return captured, nil
}

// fileReminder creates one reminder item for a captured message.
func (c *Capturer) fileReminder(
	ctx context.Context,
	subject, from string,
) (*model.Item, error) {
	title := strings.TrimSpace(subject)
	if title == "" {
		title = "Mail follow-up"
	}

	var description *string
	if from != "" {
		desc := "From " + from
		description = &desc
	}

	req := api.ItemRequest{
		Title:       title,
		Description: description,
		Type:        model.ItemTypeReminder,
		Priority:    model.PriorityMedium,
		Complexity:  model.ComplexityEasy,
	}

	return c.client.CreateItem(ctx, c.userID, req)
}
