package terminal

import (
	"errors"
	"log/slog"

	"github.com/nsf/termbox-go"
	"github.com/rocketscienceinc/gomoku-backend/internal/apperror"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPlay
	ActionBack
	ActionForward
	ActionStart
	ActionNewGame
	ActionQuit
)

// ActionForEvent - maps a key press to a game action.
func ActionForEvent(event termbox.Event) Action {
	if event.Type != termbox.EventKey {
		return ActionNone
	}

	switch event.Key {
	case termbox.KeyArrowUp:
		return ActionUp
	case termbox.KeyArrowDown:
		return ActionDown
	case termbox.KeyArrowLeft:
		return ActionLeft
	case termbox.KeyArrowRight:
		return ActionRight
	case termbox.KeySpace, termbox.KeyEnter:
		return ActionPlay
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return ActionQuit
	}

	switch event.Ch {
	case '[':
		return ActionBack
	case ']':
		return ActionForward
	case 'g':
		return ActionStart
	case 'n':
		return ActionNewGame
	case 'q':
		return ActionQuit
	}

	return ActionNone
}

// Controller drives a hot-seat game: a cursor over the board and one local history.
type Controller struct {
	logger  *slog.Logger
	history *gomoku.History
	size    int

	cursorRow int
	cursorCol int
	message   string
}

func NewController(logger *slog.Logger, size int) *Controller {
	return &Controller{
		logger:    logger.With("component", "terminal"),
		history:   gomoku.NewHistory(size),
		size:      size,
		cursorRow: size / 2,
		cursorCol: size / 2,
	}
}

// Handle - applies the action and reports whether the client should keep running.
func (that *Controller) Handle(action Action) bool {
	log := that.logger.With("method", "Handle")

	that.message = ""

	switch action {
	case ActionUp:
		that.moveCursor(-1, 0)
	case ActionDown:
		that.moveCursor(1, 0)
	case ActionLeft:
		that.moveCursor(0, -1)
	case ActionRight:
		that.moveCursor(0, 1)
	case ActionPlay:
		if err := that.history.PlayMove(that.cursorRow, that.cursorCol); err != nil {
			log.Debug("move rejected", "row", that.cursorRow, "col", that.cursorCol, "error", err)
			that.message = rejectionMessage(err)
		}
	case ActionBack:
		that.jump(that.history.CurrentMove() - 1)
	case ActionForward:
		that.jump(that.history.CurrentMove() + 1)
	case ActionStart:
		that.jump(0)
	case ActionNewGame:
		that.history = gomoku.NewHistory(that.size)
	case ActionQuit:
		return false
	case ActionNone:
	}

	return true
}

func (that *Controller) State() gomoku.State {
	return that.history.CurrentState()
}

func (that *Controller) Cursor() (int, int) {
	return that.cursorRow, that.cursorCol
}

// Message - the notice left by the last action, empty when it succeeded.
func (that *Controller) Message() string {
	return that.message
}

func (that *Controller) moveCursor(dRow, dCol int) {
	that.cursorRow = clamp(that.cursorRow+dRow, that.size)
	that.cursorCol = clamp(that.cursorCol+dCol, that.size)
}

// jump - out of range steps at either end of the history are ignored.
func (that *Controller) jump(move int) {
	if err := that.history.JumpTo(move); err != nil {
		that.logger.Debug("jump ignored", "move", move, "error", err)
	}
}

func rejectionMessage(err error) string {
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return "The game is over"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "Cell is taken"
	default:
		return "Move rejected"
	}
}

func clamp(value, size int) int {
	if value < 0 {
		return 0
	}

	if value >= size {
		return size - 1
	}

	return value
}
