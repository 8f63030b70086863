package app

// Key bindings used in handleKey.
const (
	KeyQuit          = "q"
	KeyCtrlC         = "ctrl+c"
	KeyHoldToggle    = "h"
	KeyEndCall       = "e"
	KeyTransfer      = "t"
	KeyWrapup        = "w"
	KeyRetry         = "r"
	KeyDown          = "j"
	KeyUp            = "k"
	KeyUse           = "u"
	KeyDismiss       = "x"
	KeyConfirm       = "enter"
	KeyBlindTransfer = "b"
	KeyEscape        = "esc"
	KeyEditNote      = "i"
	KeySaveNote      = "ctrl+s"
	KeyBackspace     = "backspace"
)
