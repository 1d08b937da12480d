package dispatch

import (
	"strings"
)

const (
	windowsOperatingSystemConstant = "windows"
	posixMetacharactersConstant    = " \t\n\r'\"\\$`|&;<>()*?[]{}~#!"
	windowsMetacharactersConstant  = " \t\n\r\"&|<>^%()!"
	posixEmptyArgumentConstant     = "''"
	windowsEmptyArgumentConstant   = `""`
)

// AppendArguments appends extra arguments to a literal command line, space separated.
func AppendArguments(commandLine string, arguments []string, operatingSystem string) string {
	if len(arguments) == 0 {
		return commandLine
	}
	parts := make([]string, 0, len(arguments)+1)
	parts = append(parts, commandLine)
	for _, argument := range arguments {
		parts = append(parts, QuoteArgument(argument, operatingSystem))
	}
	return strings.Join(parts, " ")
}

// QuoteArgument quotes an argument for the platform shell when it contains whitespace or shell metacharacters.
func QuoteArgument(argument string, operatingSystem string) string {
	if operatingSystem == windowsOperatingSystemConstant {
		if len(argument) == 0 {
			return windowsEmptyArgumentConstant
		}
		if !strings.ContainsAny(argument, windowsMetacharactersConstant) {
			return argument
		}
		return `"` + strings.ReplaceAll(argument, `"`, `""`) + `"`
	}

	if len(argument) == 0 {
		return posixEmptyArgumentConstant
	}
	if !strings.ContainsAny(argument, posixMetacharactersConstant) {
		return argument
	}
	return "'" + strings.ReplaceAll(argument, "'", `'\''`) + "'"
}
