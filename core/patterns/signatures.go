package patterns

import "fmt"

// Shared fragments. Expressions are compiled with (?i).
const (
	// argTokens lazily skips arguments without crossing list operators.
	argTokens = `(?:[^\s;&|]+\s+)*?`

	// rootLevelPath is "/" or a single top-level entry such as "/*" or "/etc/",
	// bare or wrapped in matching quotes.
	rootLevelPath = `(?:"/[^/\s;&|"]*/?"|'/[^/\s;&|']*/?'|/[^/\s;&|]*/?)(?:[\s;&|]|$)`

	// commandPosition anchors a command word at the start of a segment, after
	// a pipe or subshell opener, at the start of a quoted "sh -c" body, and
	// behind env assignments and common wrappers.
	commandPosition = "(?:^|[|(`]|\\s-[a-z]*c\\s+[\"'])\\s*" +
		`(?:(?:[a-z_][a-z0-9_]*=\S*|sudo|exec|nohup|command|time|` +
		`env(?:\s+-\S+)*|nice(?:\s+-n\s+\S+|\s+-\S+)*|xargs(?:\s+-\S+)*|timeout\s+\S+)\s+)*` +
		`(?:/usr)?(?:/s?bin/)?`

	// trailingRedirects tolerates output silencing after a carved-out command.
	trailingRedirects = `(?:\s+(?:[12]?>>?\s*/dev/null|2>&1|&>\s*/dev/null))*\s*$`

	blockDevices = `(?:sd|hd|vd|xvd|nvme|mmcblk|disk)`
)

func destructiveDefs() []definition {
	return []definition{
		{
			name:        "rm-rf-root",
			description: "recursive forced delete of a root-level path",
			expr:        `\brm\s+` + argTokens + `-[a-z]*(?:r[a-z]*f|f[a-z]*r)[a-z]*\s+` + argTokens + rootLevelPath,
		},
		{
			name:        "rm-r-f-root",
			description: "recursive forced delete of a root-level path (split flags)",
			expr: `\brm\s+` + argTokens + `(?:-[a-z]*r[a-z]*|--recursive)\s+` + argTokens +
				`(?:-[a-z]*f[a-z]*|--force)\s+` + argTokens + rootLevelPath,
		},
		{
			name:        "rm-f-r-root",
			description: "forced recursive delete of a root-level path (split flags)",
			expr: `\brm\s+` + argTokens + `(?:-[a-z]*f[a-z]*|--force)\s+` + argTokens +
				`(?:-[a-z]*r[a-z]*|--recursive)\s+` + argTokens + rootLevelPath,
		},
		{
			name:        "dd-block-device",
			description: "dd writing directly to a block device",
			expr:        `\bdd\b[^;&|\n]*\bof=/dev/` + blockDevices,
		},
		{
			name:        "redirect-block-device",
			description: "shell redirection into a block device",
			expr:        `>\s*/dev/` + blockDevices,
		},
		{
			name:        "tee-block-device",
			description: "tee writing into a block device",
			expr:        `\btee\b[^;&|\n]*/dev/` + blockDevices,
		},
		{
			name:        "mkfs",
			description: "filesystem format",
			expr:        `\bmkfs(?:\.[a-z0-9]+)?\b`,
		},
		{
			name:        "shutdown",
			description: "system shutdown or reboot",
			expr: "(?:(?:^|[;&|(`\\n]|\\bsudo)\\s*(?:/usr)?(?:/s?bin/)?(?:shutdown|poweroff|halt|reboot)" +
				`|\bsystemctl\s+(?:poweroff|halt|reboot))\b`,
		},
		{
			name:        "kill-all",
			description: "SIGKILL sent to every process (kill -9 -1)",
			expr:        `\bkill\s+(?:-(?:9|kill|sigkill)|-s\s+(?:9|kill|sigkill))\s+(?:--\s+)?-1\b`,
		},
	}
}

func terminationDefs() []definition {
	return []definition{
		{
			name:        "process-pipeline-kill",
			description: "process listing piped into kill",
			expr:        `\b(?:ps|pgrep)\b[^|]*\|.*\bkill\b`,
		},
		{
			name:        "port-kill",
			description: "forced kill of whatever holds a port",
			expr:        `(?:\blsof\b[^|]*\|.*\bkill\b|\bfuser\b.*\s-[a-z]*k|\bkill-port\b)`,
		},
		{
			name:        "pkill",
			description: "kill by pattern",
			expr:        commandPosition + `pkill\b`,
		},
		{
			name:        "killall",
			description: "kill by name",
			expr:        commandPosition + `killall\b`,
		},
		{
			name:        "kill",
			description: "kill by process id",
			expr:        commandPosition + `kill(?:\s|$)`,
		},
	}
}

func carveOutDefs(opts Options) []definition {
	quoted := fmt.Sprintf(`(?:"[^"]{%d,}"|'[^']{%d,}')`, opts.MinPatternLength, opts.MinPatternLength)

	return []definition{
		{
			name:        "signal-zero-probe",
			description: "existence probe with signal 0",
			expr:        `^\s*kill\s+-0\s+[^\s;&|<>]+` + trailingRedirects,
		},
		{
			name:        "variable-target",
			description: "kill of a shell variable target such as $PID or $!",
			expr:        `^\s*kill(?:\s+-[a-z0-9]+)?\s+"?\$\{?(?:[a-z_][a-z0-9_]*|!)\}?"?` + trailingRedirects,
		},
		{
			name:        "short-pid",
			description: fmt.Sprintf("kill of a numeric pid with at most %d digits", opts.MaxPIDDigits),
			expr:        fmt.Sprintf(`^\s*kill(?:\s+-[a-z0-9]+)?\s+\d{1,%d}`, opts.MaxPIDDigits) + trailingRedirects,
		},
		{
			name:        "specific-pattern",
			description: fmt.Sprintf("pkill -f with a quoted pattern of at least %d characters", opts.MinPatternLength),
			expr:        `^\s*pkill(?:\s+-[a-z0-9]+)*\s+-f(?:\s+-[a-z0-9]+)*\s+` + quoted + trailingRedirects,
		},
		{
			name:        "pgrep-xargs-kill",
			description: "pgrep -f '<pattern>' | xargs kill with a specific pattern",
			expr:        `^\s*pgrep\s+-f\s+` + quoted + `\s*\|\s*xargs(?:\s+-r)?\s+kill(?:\s+-[a-z0-9]+)?` + trailingRedirects,
		},
	}
}

// defaultAllowedPrefixes are trusted source and documentation hosts.
var defaultAllowedPrefixes = []string{
	"https://github.com/",
	"https://raw.githubusercontent.com/",
	"https://gist.github.com/",
	"https://docs.github.com/",
	"https://pkg.go.dev/",
	"https://go.dev/",
	"https://docs.python.org/",
	"https://pypi.org/",
	"https://www.npmjs.com/",
	"https://nodejs.org/",
	"https://developer.mozilla.org/",
	"https://docs.anthropic.com/",
	"https://stackoverflow.com/",
}
