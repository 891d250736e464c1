package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

type command uint8

const (
	commandIgnore command = iota
	commandAction
	commandRestart
	commandQuit
)

func keyCommand(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return commandQuit
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
		return commandAction
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return commandQuit
		case 'r':
			return commandRestart
		case 'h', 'l', 'k', 'j', ' ':
			return commandAction
		}
	}
	return commandIgnore
}

// keyAction maps arrow keys, and their vi equivalents, to game actions.
func keyAction(ev *tcell.EventKey) tetris.Action {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.ActionMoveLeft
	case tcell.KeyRight:
		return tetris.ActionMoveRight
	case tcell.KeyUp:
		return tetris.ActionRotate
	case tcell.KeyDown:
		return tetris.ActionDrop
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'h':
			return tetris.ActionMoveLeft
		case 'l':
			return tetris.ActionMoveRight
		case 'k':
			return tetris.ActionRotate
		case 'j', ' ':
			return tetris.ActionDrop
		}
	}
	return tetris.ActionNone
}
