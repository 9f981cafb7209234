package view

// Command is one discrete input from the user.
type Command int

const (
	None Command = iota
	PanLeft
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
	Reset
	Quit
)

var commandNames = map[Command]string{
	None:     "none",
	PanLeft:  "pan-left",
	PanRight: "pan-right",
	PanUp:    "pan-up",
	PanDown:  "pan-down",
	ZoomIn:   "zoom-in",
	ZoomOut:  "zoom-out",
	Reset:    "reset-view",
	Quit:     "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

var keyBindings = map[string]Command{
	"a": PanLeft, "left": PanLeft,
	"d": PanRight, "right": PanRight,
	"w": PanUp, "up": PanUp,
	"s": PanDown, "down": PanDown,
	"e": ZoomIn, "+": ZoomIn, "=": ZoomIn,
	"q": ZoomOut, "-": ZoomOut,
	"r": Reset,
	"esc": Quit, "ctrl+c": Quit,
}

// ParseCommand maps a key name to a command. Key names follow the terminal
// conventions ("left", "ctrl+c", "esc").
func ParseCommand(key string) (Command, bool) {
	c, ok := keyBindings[key]
	return c, ok
}

// KeyHelp is the one-line key summary shown by the viewers.
const KeyHelp = "[WASD] PAN  [E] ZOOM IN  [Q] ZOOM OUT  [R] RESET  [ESC] QUIT"
