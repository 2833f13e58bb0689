package domain

import (
	"fmt"
	"strings"
)

// Key is a virtual key code as named by recorder tooling (VK_A, VK_ENTER, ...).
// Letter and digit codes equal their ASCII upper-case value.
type Key uint16

// KeyNone represents no key.
const KeyNone Key = 0

const (
	KeyBackSpace   Key = 0x08
	KeyTab         Key = 0x09
	KeyEnter       Key = 0x0A
	KeyShift       Key = 0x10
	KeyControl     Key = 0x11
	KeyAlt         Key = 0x12
	KeyPause       Key = 0x13
	KeyCapsLock    Key = 0x14
	KeyEscape      Key = 0x1B
	KeySpace       Key = 0x20
	KeyPageUp      Key = 0x21
	KeyPageDown    Key = 0x22
	KeyEnd         Key = 0x23
	KeyHome        Key = 0x24
	KeyLeft        Key = 0x25
	KeyUp          Key = 0x26
	KeyRight       Key = 0x27
	KeyDown        Key = 0x28
	KeyComma       Key = 0x2C
	KeyMinus       Key = 0x2D
	KeyPeriod      Key = 0x2E
	KeySlash       Key = 0x2F
	KeySemicolon   Key = 0x3B
	KeyEquals      Key = 0x3D
	KeyOpenBracket Key = 0x5B
	KeyBackSlash   Key = 0x5C
	KeyCloseBrack  Key = 0x5D
	KeyNumPad0     Key = 0x60
	KeyMultiply    Key = 0x6A
	KeyAdd         Key = 0x6B
	KeySubtract    Key = 0x6D
	KeyDecimal     Key = 0x6E
	KeyDivide      Key = 0x6F
	KeyF1          Key = 0x70
	KeyDelete      Key = 0x7F
	KeyNumLock     Key = 0x90
	KeyScrollLock  Key = 0x91
	KeyPrintScreen Key = 0x9A
	KeyInsert      Key = 0x9B
	KeyMeta        Key = 0x9D
	KeyQuote       Key = 0xDE
	KeyBackQuote   Key = 0xC0
	KeyWindows     Key = 0x020C
	KeyContextMenu Key = 0x020D
)

// keyNameMap maps lower-case names without the "vk_" prefix to key codes.
var keyNameMap = map[string]Key{
	"back_space":    KeyBackSpace,
	"backspace":     KeyBackSpace,
	"tab":           KeyTab,
	"enter":         KeyEnter,
	"shift":         KeyShift,
	"control":       KeyControl,
	"ctrl":          KeyControl,
	"alt":           KeyAlt,
	"pause":         KeyPause,
	"caps_lock":     KeyCapsLock,
	"escape":        KeyEscape,
	"esc":           KeyEscape,
	"space":         KeySpace,
	"page_up":       KeyPageUp,
	"page_down":     KeyPageDown,
	"end":           KeyEnd,
	"home":          KeyHome,
	"left":          KeyLeft,
	"up":            KeyUp,
	"right":         KeyRight,
	"down":          KeyDown,
	"comma":         KeyComma,
	"minus":         KeyMinus,
	"period":        KeyPeriod,
	"slash":         KeySlash,
	"semicolon":     KeySemicolon,
	"equals":        KeyEquals,
	"open_bracket":  KeyOpenBracket,
	"back_slash":    KeyBackSlash,
	"close_bracket": KeyCloseBrack,
	"multiply":      KeyMultiply,
	"add":           KeyAdd,
	"subtract":      KeySubtract,
	"decimal":       KeyDecimal,
	"divide":        KeyDivide,
	"delete":        KeyDelete,
	"num_lock":      KeyNumLock,
	"scroll_lock":   KeyScrollLock,
	"printscreen":   KeyPrintScreen,
	"insert":        KeyInsert,
	"meta":          KeyMeta,
	"quote":         KeyQuote,
	"back_quote":    KeyBackQuote,
	"windows":       KeyWindows,
	"context_menu":  KeyContextMenu,
}

var keyNames = make(map[Key]string, len(keyNameMap)+48)

func init() {
	for c := 'a'; c <= 'z'; c++ {
		keyNameMap[string(c)] = Key(c - 'a' + 'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNameMap[string(c)] = Key(c)
		keyNameMap[fmt.Sprintf("numpad%c", c)] = KeyNumPad0 + Key(c-'0')
	}
	for i := 0; i < 12; i++ {
		keyNameMap[fmt.Sprintf("f%d", i+1)] = KeyF1 + Key(i)
	}

	// Canonical names: first alias wins for codes with several spellings.
	for _, name := range []string{"back_space", "control", "escape"} {
		keyNames[keyNameMap[name]] = name
	}
	for name, k := range keyNameMap {
		if _, ok := keyNames[k]; !ok {
			keyNames[k] = name
		}
	}
}

// KeyFromName parses a key name such as "VK_A", "a", "vk_enter" or "F5".
// Matching is case-insensitive and the "VK_" prefix is optional.
// Returns KeyNone for unknown names.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "vk_")
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}

// String returns the canonical VK_ name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return "VK_" + strings.ToUpper(name)
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}
