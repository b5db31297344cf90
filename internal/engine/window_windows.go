//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	DWMWA_USE_IMMERSIVE_DARK_MODE = 20
	DWMWA_BORDER_COLOR            = 34
	DWMWA_CAPTION_COLOR           = 35
)

// matchTitleBar paints the caption and border with the scene background so
// the window frame blends with the clear colour.
func matchTitleBar(window *glfw.Window, background [3]float32) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}
	h := uintptr(unsafe.Pointer(hwnd))

	var darkMode int32
	if luminance(background) < 0.5 {
		darkMode = 1
	}
	setWindowAttribute(h, DWMWA_USE_IMMERSIVE_DARK_MODE, unsafe.Pointer(&darkMode), unsafe.Sizeof(darkMode))

	// COLORREF is 0x00BBGGRR
	r, g, b := background[0], background[1], background[2]
	color := uint32(uint8(r*255)) | uint32(uint8(g*255))<<8 | uint32(uint8(b*255))<<16
	setWindowAttribute(h, DWMWA_BORDER_COLOR, unsafe.Pointer(&color), unsafe.Sizeof(color))
	setWindowAttribute(h, DWMWA_CAPTION_COLOR, unsafe.Pointer(&color), unsafe.Sizeof(color))
}

func setWindowAttribute(hwnd uintptr, attr uintptr, value unsafe.Pointer, size uintptr) {
	procDwmSetWindowAttribute.Call(hwnd, attr, uintptr(value), size)
}
