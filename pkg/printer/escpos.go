package printer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Align is a text alignment.
type Align byte

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// FontSize is a GS ! character size.
type FontSize byte

const (
	FontNormal FontSize = 0x00
	FontDouble FontSize = 0x11 // double width and height
)

// DefaultWidth is the character width of 58mm paper; 80mm paper holds 48.
const DefaultWidth = 32

const (
	barcodeHeight   = 60
	barcodeModule   = 2
	barcodeHRIBelow = 2
	code128         = 73
	maxBarcodeData  = 253 // length byte also counts the {B code set selector
)

// Document builds the ESC/POS byte stream of one receipt.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for paper holding charWidth characters per
// line and initializes the printer.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets the alignment of the following lines.
func (d *Document) SetAlign(align Align) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size.
func (d *Document) SetFontSize(size FontSize) *Document {
	d.buf.Write([]byte{GS, '!', byte(size)})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Wrap writes s over as many lines as needed, breaking between words. Every
// line starts with indent. Words longer than a line are split.
func (d *Document) Wrap(s, indent string) *Document {
	room := d.width - utf8.RuneCountInString(indent)
	if room <= 0 {
		return d.Text(indent + s)
	}

	line := indent
	flush := func() {
		d.Text(line)
		line = indent
	}
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > room {
			if strings.TrimSpace(line) != "" {
				flush()
			}
			r := []rune(word)
			line += string(r[:room])
			flush()
			word = string(r[room:])
		}
		if word == "" {
			continue
		}
		switch {
		case strings.TrimSpace(line) == "":
			line += word
		case utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) <= d.width:
			line += " " + word
		default:
			flush()
			line += word
		}
	}
	if strings.TrimSpace(line) != "" {
		d.Text(line)
	}
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and a right-aligned value on one line,
// e.g. "Subtotal:                 100.00".
func (d *Document) KeyValue(key, value string) *Document {
	d.buf.WriteString(d.justify(key, value))
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints "qty x name" and a right-aligned total. Names that do not
// fit are cut so the total always stays on the same line.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	room := d.width - utf8.RuneCountInString(prefix) - utf8.RuneCountInString(total) - 1
	d.buf.WriteString(d.justify(prefix+truncate(name, room), total))
	d.buf.WriteByte(LF)
	return d
}

// Barcode prints data as a CODE128 barcode with the digits printed below.
// Data that is empty, too long or not printable ASCII is skipped.
func (d *Document) Barcode(data string) *Document {
	if data == "" || len(data) > maxBarcodeData || !isPrintableASCII(data) {
		return d
	}
	d.buf.Write([]byte{GS, 'h', barcodeHeight})
	d.buf.Write([]byte{GS, 'w', barcodeModule})
	d.buf.Write([]byte{GS, 'H', barcodeHRIBelow})
	d.buf.Write([]byte{GS, 'k', code128, byte(len(data) + 2), '{', 'B'})
	d.buf.WriteString(data)
	d.buf.WriteByte(LF)
	return d
}

// OpenDrawer pulses the cash drawer connected to the printer (pin 2).
func (d *Document) OpenDrawer() *Document {
	d.buf.Write([]byte{ESC, 'p', 0, 25, 250})
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func (d *Document) justify(left, right string) string {
	spaces := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}
