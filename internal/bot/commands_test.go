package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrefixed(t *testing.T) {
	tests := []struct {
		content string
		want    string
		args    []string
		ok      bool
	}{
		{".luckymon", "luckymon", []string{}, true},
		{".LuckyMon please", "luckymon", []string{"please"}, true},
		{".help lucky", "help", []string{"lucky"}, true},
		{"...", "..", []string{}, true},
		{".5 bucks for lunch?", "5", []string{"bucks", "for", "lunch?"}, true},
		{". anyone here", "", nil, false},
		{". x", "", nil, false},
		{".", "", nil, false},
		{"luckymon", "", nil, false},
		{"!luckymon", "", nil, false},
	}

	for _, tt := range tests {
		got, args, ok := parsePrefixed(tt.content, ".")
		assert.Equal(t, tt.ok, ok, tt.content)
		assert.Equal(t, tt.want, got, tt.content)
		assert.Equal(t, tt.args, args, tt.content)
	}

	_, _, ok := parsePrefixed(".luckymon", "")
	assert.False(t, ok)
}

func TestChatStartingWithPrefixIsNotACommand(t *testing.T) {
	for _, content := range []string{"...", ".5 bucks for lunch?", ". anyone here", ".events"} {
		name, _, ok := parsePrefixed(content, ".")
		if !ok {
			continue
		}
		_, known := lookupCommand(name)
		assert.False(t, known, content)
	}
}

func TestHelpReply(t *testing.T) {
	assert.Equal(t, helpText("."), helpReply(".", nil))
	assert.Equal(t, "`.luckymon` or `/luckymon` - Lucky pokemon of the day!\n", helpReply(".", []string{"luckymon"}))
	assert.Equal(t, "`.luckymon` or `/luckymon` - Lucky pokemon of the day!\n", helpReply(".", []string{".LuckyMon"}))
	assert.Equal(t, "Could not find: `lucky`. Did you mean `.luckymon`?", helpReply(".", []string{"lucky"}))
	assert.Equal(t, "Could not find: `pins`.", helpReply(".", []string{"pins"}))
}

func TestSuggest(t *testing.T) {
	got, ok := suggest("luckmon")
	assert.True(t, ok)
	assert.Equal(t, "luckymon", got)

	got, ok = suggest("hlep")
	assert.True(t, ok)
	assert.Equal(t, "help", got)

	_, ok = suggest("pins")
	assert.False(t, ok)
}

func TestNotFoundText(t *testing.T) {
	assert.Equal(t, "Could not find: `lucky`. Did you mean `.luckymon`?", notFoundText("lucky", "."))
	assert.Equal(t, "Could not find: `events`.", notFoundText("events", "."))
}

func TestCommandDefs(t *testing.T) {
	defs := commandDefs()
	assert.Len(t, defs, 2)
	assert.Equal(t, "luckymon", defs[0].Name)
	assert.Contains(t, helpText("."), "`.luckymon` or `/luckymon`")
}
