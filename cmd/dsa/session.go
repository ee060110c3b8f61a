package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cory-johannsen/dsa/internal/game/character"
	"github.com/cory-johannsen/dsa/internal/game/command"
	"github.com/cory-johannsen/dsa/internal/render"
)

// session binds, executes and renders commands against one character with a
// single dice source for its whole lifetime.
type session struct {
	reg       *command.Registry
	exec      *command.Executor
	character *character.Character
	renderer  render.Renderer
}

// run executes one command and returns its rendered result.
func (s *session) run(name string, args []string) (string, error) {
	cmd, err := s.reg.Bind(name, args)
	if err != nil {
		return "", err
	}
	out, err := s.exec.Execute(cmd, s.character)
	if err != nil {
		return "", err
	}
	return s.renderer.Outcome(out, s.reg), nil
}

// repl reads commands from in until EOF or quit. Invalid input is reported on
// out and does not end the loop.
//
// Postcondition: Returns nil on EOF or quit, or the read error.
func (s *session) repl(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line, err := command.Parse(scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		switch line.Command {
		case "":
			continue
		case "quit", "exit":
			return nil
		}
		result, err := s.run(line.Command, line.Args)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, result)
	}
}
