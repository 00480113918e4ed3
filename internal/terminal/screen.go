package terminal

import (
	"fmt"

	"github.com/nsf/termbox-go"
	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/presenter"
)

const (
	boardLeft = 2
	boardTop  = 2
	cellWidth = 2

	helpText = "arrows: move  space: play  [ ]: history  g: start  n: new  q: quit"
)

// Run - opens the terminal and runs the game loop until the player quits.
func Run(controller *Controller) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer termbox.Close()

	for {
		if err := draw(controller); err != nil {
			return err
		}

		event := termbox.PollEvent()
		if event.Type == termbox.EventError {
			return fmt.Errorf("failed to read terminal event: %w", event.Err)
		}

		if !controller.Handle(ActionForEvent(event)) {
			return nil
		}
	}
}

func draw(controller *Controller) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("failed to clear terminal: %w", err)
	}

	state := controller.State()
	cursorRow, cursorCol := controller.Cursor()

	drawText(boardLeft, 0, presenter.StatusLine(state), termbox.ColorDefault|termbox.AttrBold)

	size := state.Board.Size()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			ch, fg := cellRune(state.Board.At(row, col))

			bg := termbox.ColorDefault
			if row == cursorRow && col == cursorCol {
				bg = termbox.ColorYellow
			}

			termbox.SetCell(boardLeft+col*cellWidth, boardTop+row, ch, fg, bg)
		}
	}

	line := boardTop + size + 1
	drawText(boardLeft, line, presenter.MoveLabel(state.CurrentMove)+fmt.Sprintf(" (%d/%d)", state.CurrentMove, len(state.Moves)-1), termbox.ColorDefault)

	if message := controller.Message(); message != "" {
		drawText(boardLeft, line+1, message, termbox.ColorRed)
	}

	drawText(boardLeft, line+3, helpText, termbox.ColorCyan)

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("failed to flush terminal: %w", err)
	}

	return nil
}

func cellRune(cell entity.Cell) (rune, termbox.Attribute) {
	switch cell {
	case entity.PlayerX:
		return 'X', termbox.ColorRed | termbox.AttrBold
	case entity.PlayerO:
		return 'O', termbox.ColorBlue | termbox.AttrBold
	default:
		return '.', termbox.ColorDefault
	}
}

func drawText(x, y int, text string, fg termbox.Attribute) {
	for i, ch := range []rune(text) {
		termbox.SetCell(x+i, y, ch, fg, termbox.ColorDefault)
	}
}
