package output

import (
	"strings"
	"unicode/utf8"
)

// BoxStyle defines the character set for drawing boxes
type BoxStyle struct {
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
	Horizontal  rune
	Vertical    rune
	Hover       rune
}

var (
	// ASCIIStyle uses simple ASCII characters for box drawing
	ASCIIStyle = BoxStyle{
		TopLeft:     '+',
		TopRight:    '+',
		BottomLeft:  '+',
		BottomRight: '+',
		Horizontal:  '-',
		Vertical:    '|',
		Hover:       '#',
	}

	// UnicodeStyle uses Unicode box drawing characters
	UnicodeStyle = BoxStyle{
		TopLeft:     '┌',
		TopRight:    '┐',
		BottomLeft:  '└',
		BottomRight: '┘',
		Horizontal:  '─',
		Vertical:    '│',
		Hover:       '█',
	}
)

// Canvas is a 2D character buffer
type Canvas struct {
	Width  int
	Height int
	buffer [][]rune
	style  BoxStyle
}

// NewCanvas creates a blank canvas
func NewCanvas(width, height int, useUnicode bool) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
		for j := range buffer[i] {
			buffer[i][j] = ' '
		}
	}

	style := ASCIIStyle
	if useUnicode {
		style = UnicodeStyle
	}

	return &Canvas{
		Width:  width,
		Height: height,
		buffer: buffer,
		style:  style,
	}
}

// Style returns the canvas box style
func (c *Canvas) Style() BoxStyle {
	return c.style
}

// SetCell sets a character, ignoring positions off the canvas
func (c *Canvas) SetCell(x, y int, r rune) {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		c.buffer[y][x] = r
	}
}

// GetCell returns the character at the specified position
func (c *Canvas) GetCell(x, y int) rune {
	if x >= 0 && x < c.Width && y >= 0 && y < c.Height {
		return c.buffer[y][x]
	}
	return ' '
}

// DrawBox draws a box outline. Boxes narrower than 2 cells collapse to a
// vertical bar so thin controls stay visible.
func (c *Canvas) DrawBox(x, y, width, height int) {
	if height < 2 {
		return
	}
	if width < 2 {
		for i := 0; i < height; i++ {
			c.SetCell(x, y+i, c.style.Vertical)
		}
		return
	}

	c.SetCell(x, y, c.style.TopLeft)
	c.SetCell(x+width-1, y, c.style.TopRight)
	c.SetCell(x, y+height-1, c.style.BottomLeft)
	c.SetCell(x+width-1, y+height-1, c.style.BottomRight)

	for i := 1; i < width-1; i++ {
		c.SetCell(x+i, y, c.style.Horizontal)
		c.SetCell(x+i, y+height-1, c.style.Horizontal)
	}
	for i := 1; i < height-1; i++ {
		c.SetCell(x, y+i, c.style.Vertical)
		c.SetCell(x+width-1, y+i, c.style.Vertical)
	}
}

// DrawText writes text starting at x, one rune per cell
func (c *Canvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r)
		i++
	}
}

// DrawTextCentered writes text centered within width, truncating to fit
func (c *Canvas) DrawTextCentered(x, y, width int, text string) {
	if width <= 0 {
		return
	}
	n := utf8.RuneCountInString(text)
	if n >= width {
		c.DrawText(x, y, string([]rune(text)[:width]))
		return
	}
	c.DrawText(x+(width-n)/2, y, text)
}

// FillRect fills a rectangle with a character
func (c *Canvas) FillRect(x, y, width, height int, r rune) {
	for dy := 0; dy < height; dy++ {
		for dx := 0; dx < width; dx++ {
			c.SetCell(x+dx, y+dy, r)
		}
	}
}

// String renders the canvas with trailing spaces trimmed per line
func (c *Canvas) String() string {
	var sb strings.Builder
	for i, row := range c.buffer {
		sb.WriteString(strings.TrimRight(string(row), " "))
		if i < len(c.buffer)-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
