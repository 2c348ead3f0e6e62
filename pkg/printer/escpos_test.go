package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyValue_AlignsValueToRightEdge(t *testing.T) {
	d := NewDocument(32)
	d.KeyValue("Subtotal", "R$ 10,00")

	out := string(d.Bytes())
	idx := strings.Index(out, "Subtotal")
	assert.GreaterOrEqual(t, idx, 0)

	line := out[idx:]
	line = line[:strings.IndexByte(line, LF)]
	assert.Len(t, line, 32)
	assert.True(t, strings.HasSuffix(line, "R$ 10,00"))
}

func TestItemLine_TruncatesLongNames(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(1, "Combo To Frito (Burguer+Batata+Refri)", "R$ 45,00")

	out := string(d.Bytes())
	idx := strings.Index(out, "1x ")
	line := out[idx:]
	line = line[:strings.IndexByte(line, LF)]

	assert.Len(t, line, 32)
	assert.Contains(t, line, "...")
	assert.True(t, strings.HasSuffix(line, "R$ 45,00"))
}

func TestItemLine_ShortNameFitsUntruncated(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine(2, "Coxinha", "R$ 17,00")

	out := string(d.Bytes())
	assert.Contains(t, out, "2x Coxinha")
	assert.NotContains(t, out, "...")
}

func TestTicketBanner_FramesTheNumber(t *testing.T) {
	d := NewDocument(32)
	d.TicketBanner("SENHA", "42")

	out := string(d.Bytes())
	assert.Contains(t, out, "SENHA")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, strings.Repeat("=", 32))
}

func TestSeparator_SpansFullWidth(t *testing.T) {
	d := NewDocument(48)
	d.Separator('-')

	assert.Contains(t, string(d.Bytes()), strings.Repeat("-", 48))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.False(t, p.IsConnected())

	p, err = NewPrinterFromConfig("", "", "")
	assert.NoError(t, err)
	assert.NoError(t, p.Print([]byte("dropped")))

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)
}
