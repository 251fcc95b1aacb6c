package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/leighmacdonald/hosp-tui/internal/conv"
	"github.com/leighmacdonald/hosp-tui/internal/monitor"
	"github.com/leighmacdonald/hosp-tui/internal/state"
	"github.com/leighmacdonald/hosp-tui/internal/store"
	"github.com/leighmacdonald/hosp-tui/internal/torn"
	"github.com/spf13/cobra"
)

var (
	errNoCredential    = errors.New("no api key set, run hosp-tui and press k to set one")
	errHistoryDisabled = errors.New("refresh history is disabled, see history_enabled")
	errInvalidPlayerID = errors.New("invalid player id")
)

func newOutputTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderColumn(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderTop(false).
		BorderHeader(true).
		StyleFunc(func(_, _ int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(headers...)
}

func refresh(cmd *cobra.Command, _ []string) error {
	env, errSetup := setup(cmd.Context(), nil)
	if errSetup != nil {
		return errSetup
	}
	defer env.Close()

	if env.tracker.Credential() == "" {
		return errors.Join(errNoCredential, errApp)
	}

	report, errRefresh := env.tracker.RefreshAll(cmd.Context())
	if errRefresh != nil {
		return errors.Join(errRefresh, errApp)
	}

	writeRefreshReport(cmd.OutOrStdout(), env.tracker.Rows(time.Now()), report)

	if report.CredentialRejected() {
		return errors.Join(torn.ErrInvalidCredential, errApp)
	}

	return nil
}

func writeRefreshReport(out io.Writer, rows []state.Row, report monitor.Report) {
	tbl := newOutputTable("#", "ID", "Name", "Release", "Remaining", "Result")

	for _, row := range rows {
		if row.Kind == monitor.KindNone {
			continue
		}

		result := "ok"
		if row.Index < len(report.Results) && report.Results[row.Index].Err != nil {
			result = report.Results[row.Index].Err.Error()
		}

		tbl.Row(strconv.Itoa(row.Index+1), strconv.FormatUint(uint64(row.PlayerID), 10), row.Name,
			row.ReleaseAt.Format(time.DateTime), conv.ToHMS(row.Remaining), result)
	}

	_, _ = fmt.Fprintln(out, tbl.Render())
	_, _ = fmt.Fprintf(out, "%d refreshed, %d failed\n", len(report.Results)-report.Failed(), report.Failed())
}

func list(cmd *cobra.Command, _ []string) error {
	env, errSetup := setup(cmd.Context(), nil)
	if errSetup != nil {
		return errSetup
	}
	defer env.Close()

	tbl := newOutputTable("#", "Type", "ID")
	for _, row := range env.tracker.Rows(time.Now()) {
		kind := row.Kind.Label()
		if kind == "" {
			kind = "-"
		}

		tbl.Row(strconv.Itoa(row.Index+1), kind, strconv.FormatUint(uint64(row.PlayerID), 10))
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, tbl.Render())
	_, _ = fmt.Fprintf(out, "State file: %s\n", env.tracker.Path())

	return nil
}

func history(cmd *cobra.Command, args []string) error {
	limit, errLimit := cmd.Flags().GetInt("limit")
	if errLimit != nil {
		return errors.Join(errLimit, errApp)
	}

	var playerID uint64
	if len(args) == 1 {
		parsed, errParse := strconv.ParseUint(args[0], 10, 32)
		if errParse != nil || len(args[0]) > monitor.MaxIDDigits {
			return errors.Join(fmt.Errorf("%w: %q", errInvalidPlayerID, args[0]), errApp)
		}
		playerID = parsed
	}

	env, errSetup := setup(cmd.Context(), nil)
	if errSetup != nil {
		return errSetup
	}
	defer env.Close()

	if env.history == nil {
		return errors.Join(errHistoryDisabled, errApp)
	}

	var (
		refreshes []store.Refresh
		errQuery  error
	)

	if len(args) == 1 {
		refreshes, errQuery = env.history.PlayerRefreshes(cmd.Context(), uint32(playerID), limit)
	} else {
		refreshes, errQuery = env.history.RecentRefreshes(cmd.Context(), limit)
	}

	if errQuery != nil {
		return errors.Join(errQuery, errApp)
	}

	writeHistory(cmd.OutOrStdout(), refreshes)

	return nil
}

func writeHistory(out io.Writer, refreshes []store.Refresh) {
	tbl := newOutputTable("When", "ID", "Name", "Release", "Result")

	for _, refresh := range refreshes {
		release := "-"
		result := "ok"
		if refresh.Failed() {
			result = refresh.ErrorKind
			if refresh.ErrorCode != 0 {
				result += " (" + strconv.FormatInt(refresh.ErrorCode, 10) + ")"
			}
		} else {
			release = humanize.Time(refresh.ReleaseTime)
		}

		tbl.Row(humanize.Time(refresh.CreatedOn), strconv.FormatUint(uint64(refresh.PlayerID), 10), refresh.Name,
			release, result)
	}

	_, _ = fmt.Fprintln(out, tbl.Render())
	_, _ = fmt.Fprintf(out, "%s rows\n", humanize.Comma(int64(len(refreshes))))
}
