package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/sportsense/sportsense"
)

// Run executes the chat command as a read-eval-print loop over stdin.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Ask about collected sports news. Type 'exit' to leave.")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := deps.Session.Ask(deps.Ctx, question)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", sportsense.ErrorMessage(err))
			continue
		}
		fmt.Fprintln(deps.Stdout, answer)
		fmt.Fprintln(deps.Stdout)
	}
	return scanner.Err()
}
