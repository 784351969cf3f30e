package tools

import "strings"

const redacted = "<redacted>"

// FormatCommand renders a command line for logs, shell-quoted, with every
// argument equal to one of secrets replaced.
func FormatCommand(cmd string, args []string, secrets ...string) string {
	hidden := make(map[string]struct{}, len(secrets))
	for _, s := range secrets {
		if s != "" {
			hidden[s] = struct{}{}
		}
	}

	var builder strings.Builder
	builder.WriteString(shellEscape(cmd))
	for _, arg := range args {
		builder.WriteByte(' ')
		if _, ok := hidden[arg]; ok {
			builder.WriteString(redacted)
			continue
		}
		builder.WriteString(shellEscape(arg))
	}
	return builder.String()
}

func shellEscape(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return value
	}
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}
