package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/conecta-saber/saber-cli/internal/config"
	"github.com/conecta-saber/saber-cli/pkg/clients/saberclient"
	"github.com/conecta-saber/saber-cli/pkg/core/model"
	"github.com/conecta-saber/saber-cli/pkg/core/services"
	"github.com/conecta-saber/saber-cli/pkg/core/viewstate"
	"github.com/conecta-saber/saber-cli/pkg/schedule"
	"github.com/conecta-saber/saber-cli/pkg/session"
	"github.com/conecta-saber/saber-cli/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg     *config.Config
	store   *session.Store
	gateway *saberclient.Client
	logger  *zap.Logger
	ctx     context.Context

	// Per-view snapshots. In interactive mode these live across commands,
	// so a slow refresh can never overwrite a newer one.
	agendaView  viewstate.List[model.Appointment]
	pendingView viewstate.List[model.Appointment]
	respondGate viewstate.Gate
}

var (
	env     string
	verbose bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saber",
		Short: "Conecta Saber CLI - Tutoring offers and lesson scheduling",
		Long:  `A CLI client for the Conecta Saber tutoring service: register, find lessons, manage teaching offers, and respond to scheduling requests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on the console")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(agendaCmd())
	rootCmd.AddCommand(requestsCmd())
	rootCmd.AddCommand(respondCmd())
	rootCmd.AddCommand(requestLessonCmd())
	rootCmd.AddCommand(createOfferCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(myOffersCmd())
	rootCmd.AddCommand(interactiveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, session store, and the request gateway
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Debug("Starting application", zap.String("environment", env))

	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded", zap.String("base_url", app.cfg.BaseURL))

	app.store, err = session.NewStore(env)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// The store is the gateway's token source: every request samples the
	// current token, so logout takes effect immediately.
	app.gateway = saberclient.NewClient(app.cfg.BaseURL, app.store, app.cfg.RequestTimeout(), app.logger)

	return nil
}

// Command definitions

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account (learner or volunteer)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			phone, _ := cmd.Flags().GetString("phone")
			roleArg, _ := cmd.Flags().GetString("role")

			role, err := parseRole(roleArg)
			if err != nil {
				return err
			}

			form := services.RegisterForm{
				Name:     name,
				Email:    email,
				Password: password,
				Phone:    phone,
				Role:     role,
			}

			if err := services.Register(app.ctx, app.gateway, app.logger, form); err != nil {
				return err
			}

			fmt.Printf("\n✓ Account created for %s. Log in to continue.\n", email)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "E-mail address")
	cmd.Flags().String("password", "", "Password")
	cmd.Flags().String("phone", "", "Phone (WhatsApp)")
	cmd.Flags().String("role", "aluno", "Profile type: aluno or voluntario")

	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := services.Login(app.ctx, app.gateway, app.store, app.logger, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Welcome, %s!\n", user.Name)
			if user.Role == model.RoleLearner {
				fmt.Println("You can now search for lessons: saber search <subject>")
			} else {
				fmt.Println("You can now manage offers and requests: saber my-offers, saber requests")
			}
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.Logout(app.store, app.logger); err != nil {
				return err
			}
			fmt.Println("✓ Logged out.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := services.CurrentUser(app.store)
			if err != nil {
				return err
			}
			if user == nil {
				fmt.Println("Not logged in.")
				return nil
			}

			fmt.Printf("%s (%s)\n", user.Name, user.Role)
			return nil
		},
	}
}

func agendaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agenda",
		Short: "List your confirmed lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket := app.agendaView.Begin()

			view, err := services.ListAgenda(app.ctx, app.gateway, app.store, app.logger)
			if err != nil {
				return err
			}
			app.agendaView.Apply(ticket, view.Items)

			items := app.agendaView.Items()
			if len(items) == 0 {
				fmt.Println("\nNo confirmed lessons yet.")
				return nil
			}

			fmt.Printf("\nConfirmed lessons (%d):\n\n", len(items))
			for _, apt := range items {
				fmt.Printf("  %s  %s  %s-%s  %s: %s\n",
					apt.Date,
					apt.Subject,
					model.ShortTime(apt.StartTime),
					model.ShortTime(apt.EndTime),
					counterpartLabel(view.Viewer.Role),
					apt.CounterpartName(view.Viewer.Role),
				)
			}
			return nil
		},
	}
}

func requestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List pending lesson requests (volunteers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket := app.pendingView.Begin()

			items, err := services.ListPending(app.ctx, app.gateway, app.logger)
			if err != nil {
				return err
			}
			app.pendingView.Apply(ticket, items)

			printPending(app.pendingView.Items())
			return nil
		},
	}
}

func respondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "respond <appointment_id> <accept|decline>",
		Short: "Accept or decline a pending lesson request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appointmentID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("appointment_id must be a number: %w", err)
			}

			decision, err := parseDecision(args[1])
			if err != nil {
				return err
			}

			if !app.respondGate.TryBegin() {
				return fmt.Errorf("a response is already in flight, wait for it to finish")
			}
			defer app.respondGate.End()

			// Items surfaced by `requests` are pending by definition; the
			// backend remains the authority on the actual transition.
			items, err := services.Respond(app.ctx, app.gateway, app.logger, appointmentID, model.StatusRequested, decision)
			if err != nil {
				return err
			}

			ticket := app.pendingView.Begin()
			app.pendingView.Apply(ticket, items)

			if decision == model.StatusConfirmed {
				fmt.Printf("\n✓ Lesson confirmed. It now appears in your agenda.\n")
			} else {
				fmt.Printf("\n✓ Request declined.\n")
			}
			printPending(app.pendingView.Items())
			return nil
		},
	}
}

func requestLessonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request-lesson <offer_id> <date>",
		Short: "Request a lesson against an offer (date in YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("offer_id must be a number: %w", err)
			}

			if err := services.RequestLesson(app.ctx, app.gateway, app.logger, offerID, args[1]); err != nil {
				return err
			}

			fmt.Printf("\n✓ Request sent to the tutor. You'll see it in your agenda once confirmed.\n")
			return nil
		},
	}
}

func createOfferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-offer <subject> <days> <start> <end>",
		Short: "Publish your availability as a tutor (times in HH:MM)",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			form := services.OfferForm{
				Subject:       args[0],
				AvailableDays: args[1],
				StartTime:     args[2],
				EndTime:       args[3],
			}

			window := schedule.Window{Start: form.StartTime, End: form.EndTime}
			if model.ValidTime(form.StartTime) && model.ValidTime(form.EndTime) && !window.Ordered() {
				fmt.Printf("⚠ Start %s is not before end %s; submitting anyway.\n", form.StartTime, form.EndTime)
			}

			if err := services.CreateOffer(app.ctx, app.gateway, app.logger, form); err != nil {
				return err
			}

			fmt.Printf("\n✓ Availability published! Learners can now find you under %q.\n", form.Subject)
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <subject>",
		Short: "Search lesson offers by subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, err := services.SearchOffers(app.ctx, app.gateway, app.logger, args[0])
			if err != nil {
				return err
			}

			if len(offers) == 0 {
				fmt.Println("\nNo lessons found for that subject.")
				return nil
			}

			fmt.Printf("\nFound %d offer(s):\n\n", len(offers))
			for _, offer := range offers {
				fmt.Printf("  [%d] %s with %s - %s, %s-%s\n",
					offer.ID,
					offer.Subject,
					offer.VolunteerName,
					offer.AvailableDays,
					model.ShortTime(offer.StartTime),
					model.ShortTime(offer.EndTime),
				)

				if dates := schedule.NextDates(offer.AvailableDays, time.Now(), 3); len(dates) > 0 {
					suggestions := make([]string, len(dates))
					for i, d := range dates {
						suggestions[i] = d.Format("2006-01-02")
					}
					fmt.Printf("      next dates: %s\n", strings.Join(suggestions, ", "))
				}
			}

			fmt.Println("\nRequest one with: saber request-lesson <offer_id> <date>")
			return nil
		},
	}
}

func myOffersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-offers",
		Short: "List your published offers (volunteers)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, err := services.ListMyOffers(app.ctx, app.gateway, app.logger)
			if err != nil {
				return err
			}

			if len(offers) == 0 {
				fmt.Println("\nYou have no offers yet. Publish one with: saber create-offer")
				return nil
			}

			fmt.Printf("\nYour offers (%d):\n\n", len(offers))
			for _, offer := range offers {
				fmt.Printf("  [%d] %s - %s, %s-%s\n",
					offer.ID,
					offer.Subject,
					offer.AvailableDays,
					model.ShortTime(offer.StartTime),
					model.ShortTime(offer.EndTime),
				)
			}
			return nil
		},
	}
}

func interactiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Start an interactive session (log in once, run multiple commands)",
		Long: `Start an interactive session where you can run multiple commands against
one session. The session will keep running until you type 'exit' or 'quit'.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("\nStarting interactive session...")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			// Get all sibling commands (excluding interactive itself)
			rootCmd := cmd.Parent()
			commands := make(map[string]*cobra.Command)
			for _, subCmd := range rootCmd.Commands() {
				if subCmd.Name() != "interactive" && subCmd.Name() != "completion" && subCmd.Name() != "help" {
					commands[subCmd.Name()] = subCmd
				}
			}

			scanner := bufio.NewScanner(os.Stdin)

			for {
				fmt.Print("> ")

				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts := strings.Fields(line)
				cmdName := parts[0]
				cmdArgs := parts[1:]

				if cmdName == "exit" || cmdName == "quit" {
					fmt.Println("Goodbye!")
					return nil
				}

				if cmdName == "help" {
					printInteractiveHelp(commands)
					continue
				}

				targetCmd, exists := commands[cmdName]
				if !exists {
					fmt.Printf("Unknown command: %s (type 'help' for available commands)\n\n", cmdName)
					continue
				}

				// Reset command flags and args
				targetCmd.Flags().VisitAll(func(flag *pflag.Flag) {
					flag.Changed = false
					flag.Value.Set(flag.DefValue)
				})

				// Execute the command's RunE directly, bypassing the full Execute() flow
				// This avoids re-running PersistentPreRunE which would call initApp() again
				if err := targetCmd.ParseFlags(cmdArgs); err != nil {
					fmt.Printf("Error parsing flags: %v\n\n", err)
					continue
				}

				cmdArgs = targetCmd.Flags().Args()

				if err := targetCmd.Args(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
					continue
				}

				if err := targetCmd.RunE(targetCmd, cmdArgs); err != nil {
					fmt.Printf("Error: %v\n\n", err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}

			return nil
		},
	}

	return cmd
}

func printInteractiveHelp(commands map[string]*cobra.Command) {
	fmt.Println("\nAvailable commands:")

	for _, cmd := range commands {
		fmt.Printf("  %-45s %s\n", cmd.Use, cmd.Short)
	}

	fmt.Println("\n  help                                          Show this help message")
	fmt.Println("  exit, quit                                    Exit the interactive session")
}

func parseRole(arg string) (model.Role, error) {
	switch strings.ToLower(arg) {
	case "aluno", "learner":
		return model.RoleLearner, nil
	case "voluntario", "voluntário", "volunteer":
		return model.RoleVolunteer, nil
	default:
		return "", fmt.Errorf("role must be 'aluno' or 'voluntario', got %q", arg)
	}
}

func parseDecision(arg string) (model.Status, error) {
	switch strings.ToLower(arg) {
	case "accept", "confirm":
		return model.StatusConfirmed, nil
	case "decline", "reject", "cancel":
		return model.StatusCancelled, nil
	default:
		return "", fmt.Errorf("decision must be 'accept' or 'decline', got %q", arg)
	}
}

func counterpartLabel(viewer model.Role) string {
	if viewer == model.RoleVolunteer {
		return "Aluno"
	}
	return "Prof"
}

func printPending(items []model.Appointment) {
	if len(items) == 0 {
		fmt.Println("\nNo pending requests.")
		return
	}

	fmt.Printf("\nPending requests (%d):\n\n", len(items))
	for _, apt := range items {
		fmt.Printf("  [%d] %s on %s - Aluno: %s\n",
			apt.ID,
			apt.Subject,
			apt.Date,
			apt.LearnerName,
		)
	}
	fmt.Println("\nRespond with: saber respond <appointment_id> accept|decline")
}
