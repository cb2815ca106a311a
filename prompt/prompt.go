package prompt

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

var ErrInvalidNumber = errors.New("invalid number")

// Prompter wraps an input scanner and output writer for interactive prompts.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompterFromReader creates a Prompter with a custom reader and writer.
// Input is consumed one whitespace separated token at a time.
func NewPrompterFromReader(r io.Reader, w io.Writer) *Prompter {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &Prompter{scanner: scanner, out: w}
}

func (p *Prompter) Println(a ...interface{}) error {
	_, err := fmt.Fprintln(p.out, a...)
	return err
}

// Float writes prompt without a newline and reads the next token as a
// finite number.
func (p *Prompter) Float(prompt string) (float64, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return 0, errors.Wrap(err, "write prompt")
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return 0, errors.Wrap(err, "read input")
		}
		return 0, errors.Wrap(ErrInvalidNumber, "no input")
	}
	return ParseFloat(p.scanner.Text())
}

// ParseFloat accepts anything strconv does except NaN and infinities.
func ParseFloat(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrInvalidNumber, "%q", token)
	}
	return v, nil
}
