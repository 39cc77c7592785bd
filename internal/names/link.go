package names

import (
	"fmt"
	"strings"
)

const DefaultWikiHost = "bulbapedia.bulbagarden.net"

var markdownGlyphs = strings.NewReplacer("♀", `\♀`, "♂", `\♂`)

// LinkURL builds the wiki page URL for a slug produced by LinkSlug.
func LinkURL(host, slug string) string {
	if host == "" {
		host = DefaultWikiHost
	}
	return fmt.Sprintf("https://%s/wiki/%s_(Pok%%C3%%A9mon)", host, slug)
}

// EscapeMarkdown backslash-escapes the gender glyphs so Discord does not
// render them as emoji.
func EscapeMarkdown(display string) string {
	return markdownGlyphs.Replace(display)
}
