package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/resend/resend-cli/internal/crypto"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt needs a terminal and none is attached
var ErrNotInteractive = errors.New("no interactive terminal available")

// ConfirmationResult represents the result of a confirmation prompt
type ConfirmationResult struct {
	Approved bool
	TimedOut bool
	Error    error
}

// Options configures prompting behaviour
type Options struct {
	// AssumeYes answers every confirmation with yes
	AssumeYes bool
	// DefaultDeny makes empty or invalid answers mean no
	DefaultDeny bool
	// Timeout bounds how long a confirmation waits; zero waits forever
	Timeout time.Duration
}

// Prompter reads answers and secrets from the user
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTTY  bool
	config Options

	// readPassword reads a line without echo; replaceable in tests
	readPassword func(fd int) ([]byte, error)
}

// NewPrompter creates a prompter on the given streams. Hidden input is only
// used when in is a terminal.
func NewPrompter(in io.Reader, out io.Writer, config Options) *Prompter {
	p := &Prompter{
		in:           bufio.NewReader(in),
		out:          out,
		fd:           -1,
		config:       config,
		readPassword: term.ReadPassword,
	}

	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.isTTY = term.IsTerminal(p.fd)
	}
	return p
}

// IsTerminal reports whether input comes from a terminal
func (p *Prompter) IsTerminal() bool {
	return p.isTTY
}

// ReadSecret prints label and reads a value without echoing it when possible
func (p *Prompter) ReadSecret(label string) (string, error) {
	if !p.IsTerminal() {
		return p.ReadLine(label)
	}

	fmt.Fprintf(p.out, "%s: ", label)
	raw, err := p.readPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	defer crypto.SecureZero(raw)
	return strings.TrimSpace(string(raw)), nil
}

// ReadLine prints label and reads one line of visible input
func (p *Prompter) ReadLine(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", ErrNotInteractive
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm prompts the user for confirmation with the given message
func (p *Prompter) Confirm(ctx context.Context, message string) *ConfirmationResult {
	if p.config.AssumeYes {
		return &ConfirmationResult{Approved: true}
	}

	return p.promptUser(ctx, message)
}

// promptUser handles the interactive confirmation prompt
func (p *Prompter) promptUser(ctx context.Context, message string) *ConfirmationResult {
	var promptCtx context.Context
	var cancel context.CancelFunc

	if p.config.Timeout > 0 {
		promptCtx, cancel = context.WithTimeout(ctx, p.config.Timeout)
	} else {
		promptCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	responseChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	defaultHint := "[Y/n]"
	if p.config.DefaultDeny {
		defaultHint = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s ", message, defaultHint)

	go func() {
		response, err := p.readLine()
		if err != nil {
			errorChan <- err
			return
		}
		responseChan <- response
	}()

	select {
	case <-promptCtx.Done():
		fmt.Fprintln(p.out, "\nTimeout - using default response")
		return &ConfirmationResult{
			Approved: !p.config.DefaultDeny,
			TimedOut: true,
		}

	case err := <-errorChan:
		return &ConfirmationResult{Error: err}

	case response := <-responseChan:
		return &ConfirmationResult{Approved: p.parseResponse(response)}
	}
}

// parseResponse parses the user's response to determine approval
func (p *Prompter) parseResponse(response string) bool {
	response = strings.ToLower(strings.TrimSpace(response))

	// Empty response uses default
	if response == "" {
		return !p.config.DefaultDeny
	}

	switch response {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		fmt.Fprintf(p.out, "Invalid response '%s', using default\n", response)
		return !p.config.DefaultDeny
	}
}
