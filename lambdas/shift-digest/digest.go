package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"teamop.dk/bosted/core"
	"teamop.dk/bosted/infrastructure/communication"
	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ServiceLogin interface {
	AuthenticateService(ctx context.Context) (*model.Credentials, error)
}

type ShiftSource interface {
	Shifts(ctx context.Context, userEmail string, todayOnly bool) ([]model.Shift, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, key string, contentType string, body io.ReadSeeker) error
}

type Poster interface {
	Info(ctx context.Context, message string) error
	Error(ctx context.Context, message string) error
}

type EmailSender interface {
	SendEmail(ctx context.Context, info *communication.EmailInfo) (string, error)
}

// Digest builds the daily shift plan for one facility, uploads it and
// announces who is on shift. Mailer is optional.
type Digest struct {
	Login  ServiceLogin
	Shifts ShiftSource
	Files  FileWriter
	Slack  Poster
	Mailer EmailSender

	From string
	To   []string

	now func() time.Time
}

type Result struct {
	Key       string   `json:"key"`
	Shifts    int      `json:"shifts"`
	Staff     []string `json:"staff"`
	MessageID string   `json:"messageId,omitempty"`
}

func (d *Digest) Run(ctx context.Context, facilityEmail string) (*Result, error) {
	result, err := d.run(ctx, facilityEmail)
	if err != nil {
		if postErr := d.Slack.Error(ctx, fmt.Sprintf("Vagtplan kunne ikke sendes: %v", err)); postErr != nil {
			logging.FromContext(ctx).Warn("failed to report digest error", "error", postErr)
		}
		return nil, err
	}
	return result, nil
}

func (d *Digest) run(ctx context.Context, facilityEmail string) (*Result, error) {
	log := logging.FromContext(ctx)
	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	if _, err := d.Login.AuthenticateService(ctx); err != nil {
		return nil, fmt.Errorf("service login: %w", err)
	}

	shifts, err := d.Shifts.Shifts(ctx, facilityEmail, true)
	if err != nil {
		return nil, fmt.Errorf("fetch shifts: %w", err)
	}
	staff := core.StaffOnShift(shifts, now)
	log.Info("shift digest", "facility", facilityEmail, "shifts", len(shifts), "staff", len(staff))

	var buf bytes.Buffer
	if err := core.ExportShiftPlan(shifts, &buf); err != nil {
		return nil, err
	}
	filename := fmt.Sprintf("vagtplan-%s.xlsx", now.Format(time.DateOnly))
	key := "vagtplan/" + filename
	if err := d.Files.WriteFile(ctx, key, xlsxContentType, bytes.NewReader(buf.Bytes())); err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	summary := Summary(shifts, now)
	if err := d.Slack.Info(ctx, summary); err != nil {
		return nil, err
	}

	result := &Result{
		Key:    key,
		Shifts: len(shifts),
		Staff:  utils.Map(staff, model.User.DisplayName),
	}

	if d.Mailer != nil && len(d.To) > 0 {
		messageID, err := d.Mailer.SendEmail(ctx, &communication.EmailInfo{
			From:    d.From,
			To:      d.To,
			Subject: fmt.Sprintf("Vagtplan %s", now.Format("02-01-2006")),
			Text:    summary,
			Attachments: []communication.Attachment{{
				Filename:    filename,
				ContentType: xlsxContentType,
				Content:     buf.Bytes(),
			}},
		})
		if err != nil {
			return nil, fmt.Errorf("send digest email: %w", err)
		}
		result.MessageID = messageID
	}
	return result, nil
}

// Summary lists today's staff per sub-location. Shifts without a sub-location
// are grouped under "Uden afdeling".
func Summary(shifts []model.Shift, now time.Time) string {
	staff := core.StaffOnShift(shifts, now)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Vagtplan %s: %d vagter, %d på vagt", now.Format("02-01-2006"), len(shifts), len(staff))

	groups := utils.GroupBy(shifts, func(s model.Shift) string {
		if s.SubLocationName == nil {
			return "Uden afdeling"
		}
		return *s.SubLocationName
	})
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		users := core.StaffOnShift(groups[name], now)
		fmt.Fprintf(&sb, "\n• %s: %s", name, utils.FormatBoolean(len(users) > 0,
			strings.Join(utils.Map(users, model.User.DisplayName), ", "), "ingen"))
	}
	return sb.String()
}
