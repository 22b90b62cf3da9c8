package pathwise

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pathwise/pathwise/pkg/domain"
)

// Runner handles the interactive execution loop of a Pathwise session using
// provided IO. This allows for easy testing and integration with different
// frontends (CLI, TUI, etc).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms node content before outputting it. This allows
// for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run
// (use os.Stdin and os.Stdout for an interactive terminal).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the session loop until the dialogue offers no choices, the
// input ends, or the player quits. Choices are picked by number or by id;
// "matches" prints the current career ranking.
func (r *Runner) Run(ctx context.Context, session *Session) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	lastRenderedID := ""
	for {
		node, err := session.Current()
		if err != nil {
			return fmt.Errorf("failed to load current node: %w", err)
		}

		if node.ID != lastRenderedID {
			r.printNode(writer, node)
			lastRenderedID = node.ID
		}

		choices, err := session.Available()
		if err != nil {
			return fmt.Errorf("failed to list choices: %w", err)
		}
		if len(choices) == 0 {
			r.printMatches(writer, session.Matches())
			return nil
		}

		for i, c := range choices {
			fmt.Fprintf(writer, "  %d. %s\n", i+1, c.Text)
		}

		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		switch input {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(writer, "Bye!")
			return nil
		case "matches":
			r.printMatches(writer, session.Matches())
			continue
		}

		choiceID := input
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
			choiceID = choices[n-1].ID
		}

		result, err := session.Apply(ctx, choiceID)
		if err != nil {
			var illegal *domain.IllegalChoiceError
			if errors.As(err, &illegal) {
				fmt.Fprintf(writer, "That isn't an option here. Pick 1-%d.\n", len(choices))
				continue
			}
			return fmt.Errorf("failed to apply choice: %w", err)
		}
		if result.PersistenceWarning != nil && !r.Headless {
			fmt.Fprintln(writer, "(progress could not be saved; continuing in memory)")
		}
	}
}

func (r *Runner) printNode(writer io.Writer, node *domain.DialogueNode) {
	var text string
	if len(node.Variants) > 0 {
		text = node.Variants[0].Text
	}
	if node.Speaker != "" {
		text = fmt.Sprintf("**%s**: %s", node.Speaker, text)
	}
	if r.Renderer != nil {
		if rendered, err := r.Renderer(text); err == nil {
			text = rendered
		}
	}
	fmt.Fprintln(writer, strings.TrimSpace(text))
}

func (r *Runner) printMatches(writer io.Writer, matches []domain.CareerMatch) {
	if len(matches) == 0 {
		fmt.Fprintln(writer, "No career matches yet. Keep exploring!")
		return
	}
	fmt.Fprintln(writer, "\nYour career matches:")
	for i, m := range matches {
		fmt.Fprintf(writer, "  %d. %s (%s, %s)\n", i+1, m.Name, m.Readiness, m.SalaryRange)
		for _, ev := range m.Evidence {
			fmt.Fprintf(writer, "     - %s\n", ev)
		}
	}
}
