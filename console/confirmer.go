// Package console provides the interactive confirmation surfaces: a
// prompt-per-candidate Confirmer for interactive runs and a batch review
// loop for deferred sessions.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/legisdoc"
)

// Ensure Confirmer implements legisdoc.Confirmer at compile time.
var _ legisdoc.Confirmer = (*Confirmer)(nil)

// Confirmer prompts a human on the console for a yes/no answer per
// candidate.
type Confirmer struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConfirmer creates a Confirmer reading answers from in and writing
// prompts to out.
func NewConfirmer(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewScanner(in), out: out}
}

// Confirm shows the candidate and reads the verdict. EOF on input means
// no human is attached; that is an error, not a silent accept.
func (c *Confirmer) Confirm(ctx context.Context, conf legisdoc.Confirmation) (bool, error) {
	fmt.Fprintf(c.out, "\n%s %s candidate\n", conf.BillID, conf.Kind)
	if conf.SourceURL != "" {
		fmt.Fprintf(c.out, "  source: %s\n", conf.SourceURL)
	}
	if conf.Preview != "" {
		fmt.Fprintf(c.out, "  preview: %s\n", conf.Preview)
	}

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "Accept? [y/n]: ")
		answer, err := c.readLine()
		if err != nil {
			return false, legisdoc.Errorf(legisdoc.EUNAVAILABLE, "no interactive input: %v", err)
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(c.out, "Please answer y or n.")
	}
}

func (c *Confirmer) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}
