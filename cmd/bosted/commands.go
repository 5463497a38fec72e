package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"teamop.dk/bosted/core"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

type Authenticator interface {
	AuthenticateService(ctx context.Context) (*model.Credentials, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}

type ScheduleService interface {
	Shifts(ctx context.Context, userEmail string, todayOnly bool) ([]model.Shift, error)
	StaffOnShift(ctx context.Context, userEmail string) ([]model.User, error)
	Activities(ctx context.Context, userEmail string, upcomingOnly bool, limit int) ([]model.Activity, error)
}

// PlanArchive holds the shift plans exported by the shift-digest lambda.
type PlanArchive interface {
	ListFiles(ctx context.Context, prefix string) ([]string, error)
	ReadFile(ctx context.Context, key string, outStream io.Writer) error
}

type App struct {
	Auth     Authenticator
	Schedule ScheduleService
	// Plans is nil when no digest bucket is configured.
	Plans PlanArchive
}

const planPrefix = "vagtplan/"

var errNoPlanArchive = errors.New("no digest bucket configured (BOSTED_DIGEST_BUCKET)")

type connectFunc func(ctx context.Context, configPath string) (context.Context, *App, error)

func rootCmd(connect connectFunc) *cobra.Command {
	var configPath string
	var app *App

	cmd := &cobra.Command{
		Use:           "bosted",
		Short:         "Staff schedule and activities from the Bosted backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, a, err := connect(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			app = a
			cmd.SetContext(ctx)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")

	get := func() *App { return app }
	cmd.AddCommand(
		loginCmd(get),
		shiftsCmd(get),
		activitiesCmd(get),
		staffCmd(get),
		plansCmd(get),
	)
	return cmd
}

// withServiceLogin logs the service identity in before running fn. Resource
// reads need a token; the facade does not log in on its own.
func withServiceLogin(ctx context.Context, app *App, fn func() error) error {
	if _, err := app.Auth.AuthenticateService(ctx); err != nil {
		return fmt.Errorf("service login: %w", err)
	}
	return fn()
}

func loginCmd(app func() *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check that an email belongs to a known staff member",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app().Auth.Login(cmd.Context(), email, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logget ind som %s (%s)\n", user.DisplayName(), user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Staff email")
	cmd.MarkFlagRequired("email")
	return cmd
}

func shiftsCmd(app func() *App) *cobra.Command {
	var email string
	var today, csv bool
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "List shifts, filtered to the staff member's location when --email is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withServiceLogin(ctx, app(), func() error {
				shifts, err := app().Schedule.Shifts(ctx, email, today)
				if err != nil {
					return err
				}
				if csv {
					return core.ExportShiftPlanCSV(shifts, cmd.OutOrStdout())
				}
				return printShifts(cmd.OutOrStdout(), shifts)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Staff email used as location filter")
	cmd.Flags().BoolVar(&today, "today", false, "Only shifts starting today")
	cmd.Flags().BoolVar(&csv, "csv", false, "Write CSV instead of a table")
	return cmd
}

func activitiesCmd(app func() *App) *cobra.Command {
	var email string
	var upcoming bool
	var limit int
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List activities, filtered to the staff member's location when --email is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withServiceLogin(ctx, app(), func() error {
				activities, err := app().Schedule.Activities(ctx, email, upcoming, limit)
				if err != nil {
					return err
				}
				return printActivities(cmd.OutOrStdout(), activities)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Staff email used as location filter")
	cmd.Flags().BoolVar(&upcoming, "upcoming", false, "Only activities that have not ended")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of upcoming activities (0 = all)")
	return cmd
}

func staffCmd(app func() *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "List staff on shift today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withServiceLogin(ctx, app(), func() error {
				staff, err := app().Schedule.StaffOnShift(ctx, email)
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "NAVN\tEMAIL")
				for _, user := range staff {
					fmt.Fprintf(w, "%s\t%s\n", user.DisplayName(), user.Email)
				}
				return w.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Staff email used as location filter")
	cmd.MarkFlagRequired("email")
	return cmd
}

func plansCmd(app func() *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse shift plans exported by the daily digest",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List exported shift plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans := app().Plans
			if plans == nil {
				return errNoPlanArchive
			}
			keys, err := plans.ListFiles(cmd.Context(), planPrefix)
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), path.Base(key))
			}
			return nil
		},
	}

	var output string
	get := &cobra.Command{
		Use:   "get <file>",
		Short: "Download an exported shift plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plans := app().Plans
			if plans == nil {
				return errNoPlanArchive
			}
			name := path.Base(args[0])
			dest := output
			if dest == "" {
				dest = name
			}
			if dest == "-" {
				return plans.ReadFile(cmd.Context(), planPrefix+name, cmd.OutOrStdout())
			}

			f, err := os.Create(dest)
			if err != nil {
				return err
			}
			if err := plans.ReadFile(cmd.Context(), planPrefix+name, f); err != nil {
				f.Close()
				os.Remove(dest)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Gemt %s\n", dest)
			return nil
		},
	}
	get.Flags().StringVarP(&output, "output", "o", "", "Destination file (- for stdout)")

	cmd.AddCommand(list, get)
	return cmd
}

func printShifts(out io.Writer, shifts []model.Shift) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tSLUT\tAFDELING\tPERSONALE")
	for _, row := range core.ShiftPlanRows(shifts) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3], row[5])
	}
	return w.Flush()
}

func printActivities(out io.Writer, activities []model.Activity) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITEL\tSTART\tSLUT\tAFDELING\tTILMELDTE")
	for _, a := range activities {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Title, a.StartDateTime, a.EndDateTime,
			utils.Format(a.SubLocationName),
			utils.FormatBoolean(len(a.RegisteredUsers) > 0, fmt.Sprint(len(a.RegisteredUsers)), "-"),
		)
	}
	return w.Flush()
}
