// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For plain rune keys in normal mode
type ModKeymap map[tcell.ModMask]Keymap // For keys with modifiers (Ctrl, Alt...)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	// Special keys.
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionConfirm
	p.keymap[tcell.KeyTab] = ActionCycleLabel
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyEscape] = ActionQuit
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	// Modifier combinations.
	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	// Plain rune keys for normal mode.
	p.runeKeymap['q'] = ActionQuit
	p.runeKeymap['s'] = ActionSave
	p.runeKeymap['h'] = ActionMoveLeft
	p.runeKeymap['j'] = ActionMoveDown
	p.runeKeymap['k'] = ActionMoveUp
	p.runeKeymap['l'] = ActionMoveRight
	p.runeKeymap['g'] = ActionMoveDocStart
	p.runeKeymap['G'] = ActionMoveDocEnd
	p.runeKeymap['v'] = ActionToggleSelect
	p.runeKeymap['m'] = ActionConfirm
	p.runeKeymap['L'] = ActionEnterLabelMode
	p.runeKeymap['/'] = ActionEnterFindMode
	p.runeKeymap['n'] = ActionFindNext
	p.runeKeymap['N'] = ActionFindPrev
	p.runeKeymap['y'] = ActionCopyText
	p.runeKeymap['Y'] = ActionCopyTokens
	p.runeKeymap['p'] = ActionPasteTokens
	p.runeKeymap['o'] = ActionToggleSource
	p.runeKeymap['t'] = ActionCycleTheme
}

// ProcessEvent maps a tcell key event to an ActionEvent.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	if keymap, ok := p.modKeymap[mod]; ok {
		if action, ok := keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// Keys like tcell.KeyCtrlS already imply Ctrl; drop the modifier so the
	// plain keymap check below can still match.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		r := ev.Rune()
		// Bound runes return their action but keep the rune, so prompt modes
		// can still treat the press as text.
		if action, ok := p.runeKeymap[r]; ok {
			return ActionEvent{Action: action, Rune: r}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: r}
	}

	return ActionEvent{Action: ActionUnknown}
}
