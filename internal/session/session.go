// Package session runs a stream of setting directives and message lines
// through a machine.
//
// A setting directive has the form
//
//	* B Beta III IV I AXLE [RINGS] [(HQ) (EX) ...]
//
// naming one rotor per slot (reflector first), the initial window letters
// of every slot but the reflector, optional ring settings and optional
// plugboard cycles. Every other line is a message, converted and written
// in groups of five.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/706f6c6c7578/enigma/internal/config"
	"github.com/706f6c6c7578/enigma/internal/machine"
	"github.com/706f6c6c7578/enigma/internal/permutation"
)

var (
	ErrMissingSetting = errors.New("input must start with a setting line")
	ErrSettingFormat  = errors.New("malformed setting line")
)

// GroupSize is the number of symbols per output group.
const GroupSize = 5

type Session struct {
	setup   *config.Setup
	machine *machine.Machine
	keyed   bool
	log     *slog.Logger
}

func New(setup *config.Setup, logger *slog.Logger) (*Session, error) {
	m, err := setup.NewMachine()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{setup: setup, machine: m, log: logger}, nil
}

func (s *Session) Machine() *machine.Machine { return s.machine }

// Process reads in line by line until EOF, writing one output line per
// message line. Blank lines before the first setting are skipped.
func (s *Session) Process(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := norm.NFC.String(scanner.Text())

		if strings.HasPrefix(strings.TrimSpace(line), "*") {
			if err := s.Configure(line); err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		if !s.keyed {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return fmt.Errorf("line %d: %w", lineNo, ErrMissingSetting)
		}

		converted, err := s.machine.ConvertString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := fmt.Fprintln(out, Group(converted, GroupSize)); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}
	return scanner.Err()
}

// Configure applies a setting directive. It re-inserts the rotors, sets
// positions and rings, and replaces the plugboard (the identity when the
// directive has no cycles).
func (s *Session) Configure(line string) error {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "*") {
		return fmt.Errorf("%w: %q does not start with '*'", ErrSettingFormat, line)
	}
	fields := strings.Fields(line[1:])
	n := s.machine.NumRotors()
	if len(fields) < n+1 {
		return fmt.Errorf("%w: need %d rotor names and a setting, got %q", ErrSettingFormat, n, line)
	}
	names, positions, rest := fields[:n], fields[n], fields[n+1:]

	var rings string
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "(") {
		rings, rest = rest[0], rest[1:]
	}
	plugs, err := permutation.Parse(strings.Join(rest, " "), s.setup.Alphabet)
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}

	if err := s.machine.InsertRotors(names); err != nil {
		return err
	}
	if err := s.machine.SetRotors(positions); err != nil {
		return err
	}
	if rings != "" {
		if err := s.machine.SetRings(rings); err != nil {
			return err
		}
	}
	if err := s.machine.SetPlugboard(plugs); err != nil {
		return err
	}
	s.keyed = true

	s.log.Debug("machine keyed",
		"rotors", strings.Join(s.machine.Rotors(), " "),
		"positions", positions,
		"rings", rings,
		"plugboard", plugs.String())
	return nil
}

// Group splits msg into space separated groups of n symbols; the last
// group may be shorter.
func Group(msg string, n int) string {
	rs := []rune(msg)
	var b strings.Builder
	for i := 0; i < len(rs); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(rs[i:min(i+n, len(rs))]))
	}
	return b.String()
}
