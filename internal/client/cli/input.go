package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

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

// clearValue typed at an edit prompt empties the field.
const clearValue = "-"

// GetEdit prompts for a new value of a field, showing the current one.
// It returns nil when the input is empty (keep the current value), and a
// pointer to "" when the user typed "-".
func GetEdit(reader *bufio.Reader, prompt, current string, w io.Writer) (*string, error) {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	v, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}
	switch v {
	case "":
		return nil, nil
	case clearValue:
		empty := ""
		return &empty, nil
	default:
		return &v, nil
	}
}

// GetYesNo reads a yes/no answer; an empty answer yields def.
func GetYesNo(reader *bufio.Reader, prompt string, def bool, w io.Writer) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		v, err := GetSimpleText(reader, fmt.Sprintf("%s (%s)", prompt, hint), w)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(v) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(w, "Please answer y or n.")
	}
}

// parseFilters reads key=value arguments. Keys are case-insensitive; values
// may contain spaces when later words carry no "=".
func parseFilters(args []string, allowed ...string) (map[string]string, error) {
	out := make(map[string]string, len(allowed))
	ok := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		ok[k] = true
	}

	last := ""
	for _, a := range args {
		k, v, found := strings.Cut(a, "=")
		if !found {
			if last == "" {
				return nil, fmt.Errorf("expected key=value, got %q", a)
			}
			out[last] = strings.TrimSpace(out[last] + " " + a)
			continue
		}
		k = strings.ToLower(k)
		if !ok[k] {
			return nil, fmt.Errorf("unknown filter %q", k)
		}
		out[k] = v
		last = k
	}
	return out, nil
}

// parseIndex converts a 1-based list position into a slice index.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if i < 1 || i > n {
		if n == 0 {
			return 0, errors.New("the list is empty")
		}
		return 0, fmt.Errorf("choose a number between 1 and %d", n)
	}
	return i - 1, nil
}
