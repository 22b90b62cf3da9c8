package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/pathwise/pathwise"
	"github.com/pathwise/pathwise/internal/presentation/tui"
	"github.com/pathwise/pathwise/pkg/adapters/file"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play a scenario interactively",
	Long:  `Starts an interactive session in the terminal. Progress and skill evidence are saved under the state directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSession(cmd); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	addRunFlags(runCmd.Flags())

	// Make 'run' the default when no subcommand is provided. The root
	// command needs the run flags too, because a bare `pathwise` resolves
	// flags against the root's flag set.
	addRunFlags(rootCmd.Flags())
	rootCmd.Run = runCmd.Run
}

func addRunFlags(fs *pflag.FlagSet) {
	fs.String("session", "", "Session id to resume (default: a new session)")
	fs.String("state-dir", ".pathwise/state", "Directory for saved sessions")
	fs.Bool("headless", false, "Run in headless mode (no banner, plain output)")
}

func runSession(cmd *cobra.Command) error {
	sessionID, _ := cmd.Flags().GetString("session")
	stateDir, _ := cmd.Flags().GetString("state-dir")
	headless, _ := cmd.Flags().GetBool("headless")

	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	engine, err := engineFromFlags(cmd, pathwise.WithBlobStore(file.NewStore(stateDir)))
	if err != nil {
		return err
	}

	session, err := engine.Session(context.Background(), sessionID)
	if err != nil {
		return err
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if interactive && !headless {
		tui.PrintBanner()
		fmt.Printf("Session: %s (resume with --session %s)\n\n", sessionID, sessionID)
	}

	runner := pathwise.NewRunner()
	runner.Input = os.Stdin
	runner.Output = os.Stdout
	runner.Headless = headless
	if interactive && !headless {
		runner.Renderer = tui.NewRenderer()
	}

	return runner.Run(context.Background(), session)
}
