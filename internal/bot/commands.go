package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/bwmarrin/discordgo"
)

const (
	cmdLuckymon = "luckymon"
	cmdHelp     = "help"

	maxSuggestDistance = 3
)

type commandInfo struct {
	name        string
	description string
}

var commands = []commandInfo{
	{cmdLuckymon, "Lucky pokemon of the day!"},
	{cmdHelp, "List the available commands"},
}

func commandDefs() []*discordgo.ApplicationCommand {
	defs := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, c := range commands {
		defs = append(defs, &discordgo.ApplicationCommand{Name: c.name, Description: c.description})
	}
	return defs
}

// parsePrefixed splits ".help luckymon" into "help" and ["luckymon"]. ok is
// false unless a command name follows the prefix directly.
func parsePrefixed(content, prefix string) (string, []string, bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	rest := strings.TrimPrefix(content, prefix)
	if r, _ := utf8.DecodeRuneInString(rest); rest == "" || unicode.IsSpace(r) {
		return "", nil, false
	}
	fields := strings.Fields(rest)
	return strings.ToLower(fields[0]), fields[1:], true
}

func lookupCommand(name string) (commandInfo, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return commandInfo{}, false
}

// suggest returns the closest known command within maxSuggestDistance edits.
func suggest(input string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range commands {
		if d := levenshtein.ComputeDistance(input, c.name); d < bestDist {
			best, bestDist = c.name, d
		}
	}
	return best, best != ""
}

func helpText(prefix string) string {
	var b strings.Builder
	b.WriteString("**Commands**\n")
	for _, c := range commands {
		b.WriteString(commandLine(c, prefix))
	}
	return b.String()
}

// helpReply answers ".help" and ".help <command>".
func helpReply(prefix string, args []string) string {
	if len(args) == 0 {
		return helpText(prefix)
	}
	name := strings.ToLower(strings.TrimPrefix(args[0], prefix))
	if c, ok := lookupCommand(name); ok {
		return commandLine(c, prefix)
	}
	return notFoundText(name, prefix)
}

func commandLine(c commandInfo, prefix string) string {
	return "`" + prefix + c.name + "` or `/" + c.name + "` - " + c.description + "\n"
}

func notFoundText(input, prefix string) string {
	msg := "Could not find: `" + input + "`."
	if s, ok := suggest(input); ok {
		msg += " Did you mean `" + prefix + s + "`?"
	}
	return msg
}
