// Package cli holds the interactive parts of the tool: the candidate
// selection menu and terminal rendering of previews and run summaries. The
// pipeline only depends on the resulting index predicate, never on the menu
// mechanics.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/splitsync/internal/domain"
	"github.com/iho/splitsync/internal/usecase"
)

const selectorMenu = `
How would you like to filter?
  1. Import all transactions
  2. Import transactions before a position
  3. Import transactions after a position
  4. Import a position range
  5. Import an explicit list of positions (e.g. 2,5,7)
  6. Cancel import
`

// Selector prompts for a positional filter over the importable candidates.
// Positions are 1-indexed in chronological order.
type Selector struct {
	in  *bufio.Reader
	out io.Writer

	// AssumeYes skips the final confirmation prompt.
	AssumeYes bool
}

// NewSelector creates a selector reading choices from in and writing prompts
// to out.
func NewSelector(in io.Reader, out io.Writer) *Selector {
	return &Selector{in: bufio.NewReader(in), out: out}
}

// Select renders the candidate list, prompts for one of the six filter
// modes, and asks for a final confirmation. Cancelling either prompt returns
// domain.ErrSelectionCancelled.
func (s *Selector) Select(candidates []domain.CandidateTransaction) (usecase.IndexPredicate, error) {
	WriteCandidateTable(s.out, candidates)

	pred, err := s.pickPredicate(len(candidates))
	if err != nil {
		return nil, err
	}

	selected := 0
	for i := range candidates {
		if pred(i + 1) {
			selected++
		}
	}
	if selected == 0 {
		fmt.Fprintln(s.out, "No transactions selected.")
		return nil, domain.ErrSelectionCancelled
	}

	if !s.AssumeYes {
		ok, err := s.confirm(fmt.Sprintf("Import %d transaction(s)?", selected))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSelectionCancelled
		}
	}

	return pred, nil
}

func (s *Selector) pickPredicate(count int) (usecase.IndexPredicate, error) {
	for {
		fmt.Fprint(s.out, selectorMenu)
		choice, err := s.promptLine("Enter choice (1-6): ")
		if err != nil {
			return nil, err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			return func(int) bool { return true }, nil
		case "2":
			n, err := s.promptPosition("Import positions BEFORE: ", count)
			if err != nil {
				return nil, err
			}
			return func(pos int) bool { return pos < n }, nil
		case "3":
			n, err := s.promptPosition("Import positions AFTER: ", count)
			if err != nil {
				return nil, err
			}
			return func(pos int) bool { return pos > n }, nil
		case "4":
			lo, err := s.promptPosition("Range start: ", count)
			if err != nil {
				return nil, err
			}
			hi, err := s.promptPosition("Range end: ", count)
			if err != nil {
				return nil, err
			}
			if hi < lo {
				lo, hi = hi, lo
			}
			return func(pos int) bool { return pos >= lo && pos <= hi }, nil
		case "5":
			line, err := s.promptLine("Positions (comma-separated): ")
			if err != nil {
				return nil, err
			}
			positions, err := ParsePositionList(line, count)
			if err != nil {
				fmt.Fprintf(s.out, "Invalid selection: %v\n", err)
				continue
			}
			return func(pos int) bool {
				_, ok := positions[pos]
				return ok
			}, nil
		case "6":
			return nil, domain.ErrSelectionCancelled
		default:
			fmt.Fprintln(s.out, "Please enter a number between 1 and 6.")
		}
	}
}

// ParsePositionList parses a comma-separated list of 1-indexed positions,
// rejecting entries outside [1, count].
func ParsePositionList(input string, count int) (map[int]struct{}, error) {
	positions := make(map[int]struct{})
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", part)
		}
		if n < 1 || n > count {
			return nil, fmt.Errorf("position %d is out of range 1-%d", n, count)
		}
		positions[n] = struct{}{}
	}
	if len(positions) == 0 {
		return nil, errors.New("no positions given")
	}
	return positions, nil
}

// promptPosition re-prompts until it reads a position within [1, count].
func (s *Selector) promptPosition(prompt string, count int) (int, error) {
	for {
		line, err := s.promptLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 1 || n > count {
			fmt.Fprintf(s.out, "Enter a position between 1 and %d.\n", count)
			continue
		}
		return n, nil
	}
}

func (s *Selector) confirm(prompt string) (bool, error) {
	line, err := s.promptLine(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// promptLine reads one input line. EOF means the user walked away, which is
// treated as cancellation.
func (s *Selector) promptLine(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return line, nil
		}
		return "", domain.ErrSelectionCancelled
	}
	return line, nil
}
