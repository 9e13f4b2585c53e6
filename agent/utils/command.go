package utils

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ToolgateCommand returns the toolgate executable command.
// Currently returns "toolgate", assuming it's in PATH.
func ToolgateCommand() string {
	return "toolgate"
}

// HookCommandLine returns the command line the agent runs for a hook type.
func HookCommandLine(agentName, hookType string) string {
	return fmt.Sprintf("%s _hook %s %s", ToolgateCommand(), agentName, hookType)
}

// IsToolgateHookCommand reports whether cmd invokes the toolgate hook
// entry point, with or without a directory prefix on the executable.
func IsToolgateHookCommand(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) < 2 {
		return false
	}
	return filepath.Base(fields[0]) == ToolgateCommand() && fields[1] == "_hook"
}
