package messages

import "devtoolshub/internal/appearance"

// NavigateMsg asks the shell to open Path.
type NavigateMsg struct {
	Path string
}

// BackMsg is sent by screens when they want to return to the home screen.
type BackMsg struct{}

// AppearanceChangedMsg tells the current screen to redraw in Mode.
type AppearanceChangedMsg struct {
	Mode appearance.Mode
}
