package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/automata/internal/presentation/table"
	"github.com/aretw0/automata/pkg/domain"
)

// Simulator keys.
const (
	KeyNext  = 'n'
	KeyPrev  = 'p'
	KeyReset = 'r'
	KeyQuit  = 'q'
)

// Simulator steps through a precomputed validation result one key at a time.
type Simulator struct {
	result  *domain.Result
	cursor  *domain.Cursor
	out     io.Writer
	verdict func(string, bool) string
}

// SimulatorOption configures a Simulator.
type SimulatorOption func(*Simulator)

// WithVerdictStyle decorates the final verdict line, e.g. with colour.
func WithVerdictStyle(style func(string, bool) string) SimulatorOption {
	return func(s *Simulator) {
		if style != nil {
			s.verdict = style
		}
	}
}

// NewSimulator creates a simulator that writes frames to out.
func NewSimulator(result *domain.Result, out io.Writer, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		result:  result,
		cursor:  domain.NewCursor(result.Trace),
		out:     out,
		verdict: func(s string, _ bool) string { return s },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cursor exposes the position of the simulator.
func (s *Simulator) Cursor() *domain.Cursor {
	return s.cursor
}

// Run draws the first frame and then applies keys read from in until q,
// end of input or ctx is done. Unknown keys and whitespace are ignored.
func (s *Simulator) Run(ctx context.Context, in io.Reader) error {
	if err := s.draw(); err != nil {
		return err
	}

	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		quit, moved := s.Apply(b)
		if quit {
			return nil
		}
		if moved {
			if err := s.draw(); err != nil {
				return err
			}
		}
	}
}

// Apply handles one key. moved is false when the key did not change the frame.
func (s *Simulator) Apply(key byte) (quit, moved bool) {
	switch key {
	case KeyQuit, 3: // 3 is Ctrl+C in raw mode
		return true, false
	case KeyNext:
		return false, s.cursor.Next()
	case KeyPrev:
		return false, s.cursor.Prev()
	case KeyReset:
		moved := s.cursor.Index() != 0
		s.cursor.Reset()
		return false, moved
	}
	return false, false
}

// Frame renders the current position as text.
func (s *Simulator) Frame() string {
	var sb strings.Builder
	if s.cursor.Len() == 0 {
		sb.WriteString("The automaton has no initial state.\n")
		sb.WriteString(s.verdict(table.Verdict(s.result.Input, false), false))
		sb.WriteString("\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Input: %s\n", s.cursor.Highlight(s.result.Input))
	sb.WriteString(table.Trace(s.result.Trace, s.cursor.Index()))
	if s.cursor.AtEnd() {
		sb.WriteString(s.verdict(table.Verdict(s.result.Input, s.result.Accepted), s.result.Accepted))
		sb.WriteString("\n")
	} else {
		fmt.Fprintf(&sb, "[%c]ext [%c]rev [%c]eset [%c]uit\n", KeyNext, KeyPrev, KeyReset, KeyQuit)
	}
	return sb.String()
}

func (s *Simulator) draw() error {
	_, err := fmt.Fprintf(s.out, "\n%s", s.Frame())
	return err
}

// CRLFWriter turns "\n" into "\r\n" for terminals in raw mode.
type CRLFWriter struct {
	W io.Writer
}

func (c CRLFWriter) Write(p []byte) (int, error) {
	if _, err := c.W.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
