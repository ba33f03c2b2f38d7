// Package cli runs the interactive converter over a reader and writer.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	id "unitconv/pkg/domain"
	"unitconv/pkg/units"
)

// converter hides the dimension of the catalog being prompted for.
type converter struct {
	noun   string
	shorts []string
	// valid reports whether name resolves to a unit.
	valid   func(name string) bool
	convert func(amount decimal.Decimal, from, to string) string
}

func quantityConverter[D units.Dimension](c units.Catalog[D], noun string) converter {
	return converter{
		noun:   noun,
		shorts: c.Shorts(),
		valid: func(name string) bool {
			_, ok := c.ParseUnit(name)
			return ok
		},
		convert: func(amount decimal.Decimal, from, to string) string {
			f, _ := c.ParseUnit(from)
			t, _ := c.ParseUnit(to)
			return units.New(amount, f).ConvertTo(t).LongString()
		},
	}
}

func speedConverter() converter {
	return converter{
		noun:   "speed",
		shorts: units.Speeds().Shorts(),
		valid: func(name string) bool {
			_, ok := units.ParseSpeedUnit(name)
			return ok
		},
		convert: func(amount decimal.Decimal, from, to string) string {
			f, _ := units.ParseSpeedUnit(from)
			t, _ := units.ParseSpeedUnit(to)
			return units.NewSpeedIn(amount, f).ConvertTo(t).LongString()
		},
	}
}

func converterFor(kind id.Kind) (converter, error) {
	switch kind {
	case id.KindLength:
		return quantityConverter(units.Lengths(), "distance"), nil
	case id.KindTime:
		return quantityConverter(units.Times(), "duration"), nil
	case id.KindMass:
		return quantityConverter(units.Masses(), "weight"), nil
	case id.KindSpeed:
		return speedConverter(), nil
	}
	return converter{}, fmt.Errorf("unsupported dimension %q", kind)
}

// Prompt is the interactive converter for one dimension.
type Prompt struct {
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
	conv   converter
}

func NewPrompt(kind id.Kind, in io.Reader, out io.Writer, logger *slog.Logger) (*Prompt, error) {
	conv, err := converterFor(kind)
	if err != nil {
		return nil, err
	}
	return &Prompt{in: bufio.NewScanner(in), out: out, logger: logger, conv: conv}, nil
}

// Run asks for a base unit, an amount and a target unit, then prints the
// converted value. Invalid input restarts the round. It returns nil at end
// of input and ctx.Err() once ctx is done.
func (p *Prompt) Run(ctx context.Context) error {
	available := strings.Join(p.conv.shorts, ", ")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		base, ok := p.ask(fmt.Sprintf("Enter your base unit in (%s)", available))
		if !ok {
			return p.in.Err()
		}
		if !p.conv.valid(base) {
			p.logger.Debug("rejected base unit", "input", base)
			continue
		}

		raw, ok := p.ask(fmt.Sprintf("Enter your %s in above unit", p.conv.noun))
		if !ok {
			return p.in.Err()
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			p.logger.Debug("rejected amount", "input", raw)
			continue
		}

		target, ok := p.ask(fmt.Sprintf("Enter your target unit in (%s)", available))
		if !ok {
			return p.in.Err()
		}
		if !p.conv.valid(target) {
			p.logger.Debug("rejected target unit", "input", target)
			continue
		}

		fmt.Fprintf(p.out, "\nYour target %s is: %s\n\n", p.conv.noun, p.conv.convert(amount, base, target))
	}
}

func (p *Prompt) ask(question string) (string, bool) {
	fmt.Fprintln(p.out, question)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}
