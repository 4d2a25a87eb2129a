package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prompts on w and returns one trimmed line from reader. A
// last line without a newline is still accepted.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prompts on w and reads a non-empty secret from the terminal
// with echo off.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(prompt), err)
	}
	if len(pw) == 0 {
		return "", fmt.Errorf("%s must not be empty", strings.ToLower(prompt))
	}
	return string(pw), nil
}

// GetNewPassword asks for a secret twice and fails when the entries differ.
func GetNewPassword(prompt string, w io.Writer) (string, error) {
	first, err := GetPassword(prompt, w)
	if err != nil {
		return "", err
	}
	second, err := GetPassword("Confirm "+strings.ToLower(prompt), w)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("entries do not match")
	}
	return first, nil
}
