package errors

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ExtractContext reads the document at location and returns the lines
// around it, with the offending line marked. It returns "" when the
// document is not a readable file.
func ExtractContext(location Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	file, err := os.Open(location.Document)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	errorLine := location.Line - 1
	if errorLine >= len(lines) {
		return ""
	}
	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, lines[i]))

		if i == errorLine && location.Column > 0 {
			padding := strings.Repeat(" ", location.Column-1)
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), padding))
		}
	}

	return sb.String()
}

// AddContextToError attaches the two lines before and after the error
// location, when the document is a readable file.
func AddContextToError(err *Error) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(err.Location, 2)
	}
	return err
}
