package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pevans/snooze/app"
	"github.com/pevans/snooze/client"
)

var stdin = bufio.NewReader(os.Stdin)

// usageError reports a missing or bad argument along with the command's usage.
func usageError(problem, usage string) error {
	return fmt.Errorf("%s\nUsage: %s", problem, usage)
}

// failed wraps err with a readable message, or returns nil.
func failed(err error, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %s", action, describe(err))
}

// describe turns an error into the message shown to the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, client.ErrNetwork):
		return "could not reach the server (" + err.Error() + ")"
	case errors.Is(err, app.ErrNotLoggedIn):
		return "you are not logged in (run: snooze login)"
	default:
		return err.Error()
	}
}

// prompt asks for a line on stdin when value is empty.
func prompt(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}

	fmt.Printf("%s: ", label)
	line, err := stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// requireArg returns the first positional argument.
func requireArg(args []string, what, usage string) (string, error) {
	if len(args) < 1 || args[0] == "" {
		return "", usageError(what+" is required", usage)
	}
	return args[0], nil
}
