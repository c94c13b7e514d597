package cmd

import (
	"fmt"
	"strings"
)

var completionCommands = []string{
	"print", "ls", "add", "do", "undo", "move", "swap", "append", "edit",
	"delete", "clear", "tui", "doctor", "config", "completion", "version", "help",
}

var completionFlags = []string{
	"-file", "-format", "-color", "-no-color", "-schema", "-validate", "-lock",
	"-log-level", "-log-format", "-log-timestamps", "-log-caller", "-help", "-version",
}

// completionCommand prints a completion script for the named shell.
func completionCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("completion: expected a shell (bash, zsh, fish, powershell)")
	}

	commands := strings.Join(completionCommands, " ")
	flags := strings.Join(completionFlags, " ")

	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Printf(bashCompletion, commands, flags)
	case "zsh":
		fmt.Printf(zshCompletion, commands, flags)
	case "fish":
		fmt.Printf(fishCompletion, commands, strings.Join(trimDashes(completionFlags), " "))
	case "powershell", "pwsh":
		fmt.Printf(powershellCompletion, quoteList(completionCommands), quoteList(completionFlags))
	default:
		return fmt.Errorf("completion: unsupported shell %q", args[0])
	}
	return nil
}

func trimDashes(flags []string) []string {
	out := make([]string, len(flags))
	for i, f := range flags {
		out[i] = strings.TrimPrefix(f, "-")
	}
	return out
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}

const bashCompletion = `# tsk bash completion
_tsk() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    case "$prev" in
        -file|-schema)
            COMPREPLY=($(compgen -f -- "$cur"))
            return ;;
        -format)
            COMPREPLY=($(compgen -W "auto json yaml toml text" -- "$cur"))
            return ;;
        -color)
            COMPREPLY=($(compgen -W "auto always never" -- "$cur"))
            return ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
            return ;;
    esac
    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%[2]s" -- "$cur"))
    else
        COMPREPLY=($(compgen -W "%[1]s" -- "$cur"))
    fi
}
complete -F _tsk tsk
`

const zshCompletion = `#compdef tsk
# tsk zsh completion
_tsk() {
    local -a commands flags
    commands=(%[1]s)
    flags=(%[2]s)
    if [[ "$words[CURRENT]" == -* ]]; then
        compadd -- $flags
    else
        compadd -- $commands
    fi
}
compdef _tsk tsk
`

const fishCompletion = `# tsk fish completion
complete -c tsk -f
complete -c tsk -n "__fish_use_subcommand" -a "%[1]s"
for opt in %[2]s
    complete -c tsk -o $opt
end
complete -c tsk -n "__fish_seen_subcommand_from completion" -a "bash zsh fish powershell"
`

const powershellCompletion = `# tsk PowerShell completion
Register-ArgumentCompleter -Native -CommandName tsk -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $commands = @(%[1]s)
    $flags = @(%[2]s)
    $candidates = if ($wordToComplete -like '-*') { $flags } else { $commands }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
