package debugui

import "github.com/AllenDang/cimgui-go/imgui"

// InputState reports whether Dear ImGui is consuming mouse or keyboard input
// this frame. Game input should be ignored while a capture flag is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func CurrentInput() InputState {
	guiIO := imgui.CurrentIO()
	return InputState{
		WantCaptureMouse:    guiIO.WantCaptureMouse(),
		WantCaptureKeyboard: guiIO.WantCaptureKeyboard(),
	}
}
