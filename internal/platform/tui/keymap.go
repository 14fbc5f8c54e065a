package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-outpost/internal/game"
)

// KeyMap defines the key bindings for the outpost.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Embark     key.Binding
	Survey     key.Binding
	Buy        key.Binding
	Base       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Embark, k.Survey, k.Buy, k.Base, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Embark, k.Survey, k.Buy, k.Base},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "right"),
		),
		Embark: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "embark"),
		),
		Survey: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "survey"),
		),
		Buy: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "buy circle"),
		),
		Base: key.NewBinding(
			key.WithKeys("i", "esc"),
			key.WithHelp("i/esc", "return to base"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SetScreen enables the bindings that make sense on the given screen.
// Disabled bindings neither match nor show up in help.
func (k *KeyMap) SetScreen(s game.ScreenState) {
	embarked := s == game.ScreenEmbark

	k.Left.SetEnabled(embarked)
	k.Right.SetEnabled(embarked)
	k.Base.SetEnabled(embarked)

	k.Embark.SetEnabled(!embarked)
	k.Survey.SetEnabled(!embarked)
	k.Buy.SetEnabled(!embarked)

	if embarked {
		k.Up.SetHelp("up/k", "move")
		k.Down.SetHelp("down/j", "move")
	} else {
		k.Up.SetHelp("up/k", "prev site")
		k.Down.SetHelp("down/j", "next site")
	}
}

// Intent is what a key press asks for, before it is tied to a screen.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentEmbark
	IntentSurvey
	IntentBuy
	IntentBase
	IntentScreenshot
	IntentHelp
	IntentQuit
)

// KeyMapper translates Bubble Tea key messages to intents.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys *KeyMap
}

// NewKeyMapper creates a key mapper over keys.
func NewKeyMapper(keys *KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey returns the intent bound to msg, or IntentNone.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) Intent {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return IntentQuit
	case key.Matches(msg, k.Up):
		return IntentUp
	case key.Matches(msg, k.Down):
		return IntentDown
	case key.Matches(msg, k.Left):
		return IntentLeft
	case key.Matches(msg, k.Right):
		return IntentRight
	case key.Matches(msg, k.Embark):
		return IntentEmbark
	case key.Matches(msg, k.Survey):
		return IntentSurvey
	case key.Matches(msg, k.Buy):
		return IntentBuy
	case key.Matches(msg, k.Base):
		return IntentBase
	case key.Matches(msg, k.Screenshot):
		return IntentScreenshot
	case key.Matches(msg, k.Help):
		return IntentHelp
	}
	return IntentNone
}

// direction returns the movement direction for an intent.
func (i Intent) direction() game.Direction {
	switch i {
	case IntentUp:
		return game.DirUp
	case IntentDown:
		return game.DirDown
	case IntentLeft:
		return game.DirLeft
	case IntentRight:
		return game.DirRight
	default:
		return game.DirNone
	}
}
