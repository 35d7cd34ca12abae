package shell

import (
	"sort"
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter completes command names, their options, and setting
// names after set.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

var commandOptions = map[string][]string{
	"solve":    {"-nodes"},
	"autoplay": {"-seed", "-file"},
}

func (c *ShellCompleter) commandNames() []string {
	names := make([]string, 0, len(c.sc.commands()))
	for n := range c.sc.commands() {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var candidates []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		if len(fields) == 1 {
			prefix = fields[0]
		}
		candidates = c.commandNames()
	default:
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		cmd := fields[0]
		if cmd == "set" && (len(fields) == 1 || (len(fields) == 2 && !endsWithSpace)) {
			candidates = c.sc.cfg.AllKeys()
			sort.Strings(candidates)
		} else {
			candidates = commandOptions[cmd]
		}
	}

	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len(prefix)
}
