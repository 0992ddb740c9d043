package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// getPassword is a test seam for GetPassword.
var getPassword = GetPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
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

// GetPassword prints prompt to w and reads a password from the user's
// terminal without echo. A newline is printed after the read to keep the
// UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// The Get*Optional helpers return nil for a blank answer, which leaves the
// field out of create and update requests.

func GetOptionalText(reader *bufio.Reader, prompt string, w io.Writer) (*string, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	return &s, nil
}

func GetOptionalInt(reader *bufio.Reader, field, prompt string, w io.Writer) (*int, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, &models.FieldError{Field: field, Reason: "must be a whole number"}
	}
	return &n, nil
}

func GetOptionalID(reader *bufio.Reader, field, prompt string, w io.Writer) (*int64, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return nil, &models.FieldError{Field: field, Reason: "must be a positive id"}
	}
	return &id, nil
}

// GetOptionalBool accepts y/yes/n/no in any case.
func GetOptionalBool(reader *bufio.Reader, field, prompt string, w io.Writer) (*bool, error) {
	s, err := GetSimpleText(reader, prompt+" (y/n)", w)
	if err != nil || s == "" {
		return nil, err
	}
	var v bool
	switch strings.ToLower(s) {
	case "y", "yes":
		v = true
	case "n", "no":
		v = false
	default:
		return nil, &models.FieldError{Field: field, Reason: "answer y or n"}
	}
	return &v, nil
}

// GetOptionalDate reads a YYYY-MM-DD date.
func GetOptionalDate(reader *bufio.Reader, field, prompt string, w io.Writer) (*models.Timestamp, error) {
	s, err := GetSimpleText(reader, prompt+" (YYYY-MM-DD)", w)
	if err != nil || s == "" {
		return nil, err
	}
	ts, err := models.ParseTimestamp(s)
	if err != nil {
		return nil, &models.FieldError{Field: field, Reason: "must be a date like 2025-01-31"}
	}
	return &ts, nil
}
