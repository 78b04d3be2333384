package digitalrain

import (
	"bytes"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Xterm", func() {
	var (
		buf  bytes.Buffer
		term *Xterm
	)

	BeforeEach(func() {
		buf.Reset()
		term = NewXterm(&buf)
	})

	It("buffers output until flushed", func() {
		Expect(term.MoveTo(2, 1)).To(Succeed())
		Expect(term.WriteRune('ж')).To(Succeed())
		Expect(buf.Len()).To(BeZero())

		Expect(term.Flush()).To(Succeed())
		Expect(buf.String()).To(Equal("\033[2;3Hж"))
	})

	It("rejects negative positions", func() {
		Expect(term.MoveTo(-1, 0)).NotTo(Succeed())
	})

	It("toggles the cursor together with autowrap", func() {
		Expect(term.ShowCursor(false)).To(Succeed())
		Expect(buf.String()).To(Equal("\033[?7l\033[?25l"))
		buf.Reset()
		Expect(term.ShowCursor(true)).To(Succeed())
		Expect(buf.String()).To(Equal("\033[?7h\033[?12l\033[?25h"))
	})

	It("clears the screen", func() {
		Expect(term.Clear()).To(Succeed())
		Expect(buf.String()).To(Equal("\033[2J\033[H"))
	})

	It("renders glyphs through a style but leaves blanks alone", func() {
		term = NewXterm(&buf, WithStyle(lipgloss.NewStyle().Bold(true)))
		Expect(term.WriteRune('7')).To(Succeed())
		Expect(term.WriteRune(' ')).To(Succeed())
		Expect(term.Flush()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("7"))
		Expect(buf.String()).To(HaveSuffix(" "))
	})
})

var _ = Describe("Screen", func() {
	var (
		sim    tcell.SimulationScreen
		screen *Screen
	)

	BeforeEach(func() {
		sim = tcell.NewSimulationScreen("UTF-8")
		Expect(sim.Init()).To(Succeed())
		sim.SetSize(20, 5)
		screen = NewScreen(sim, tcell.StyleDefault.Foreground(tcell.ColorGreen))
	})

	AfterEach(func() {
		sim.Fini()
	})

	runeAt := func(col, row int) rune {
		cells, width, _ := sim.GetContents()
		c := cells[row*width+col]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}

	It("reports the screen size", func() {
		Expect(screen.Size()).To(Equal(Bounds{Width: 20, Height: 5}))
	})

	It("draws cells through a surface", func() {
		s := quietSurface(screen)
		Expect(s.Draw([]Cell{{Position{2, 1}, 'x'}, {Position{19, 4}, 'y'}})).To(Succeed())
		Expect(runeAt(2, 1)).To(Equal('x'))
		Expect(runeAt(19, 4)).To(Equal('y'))

		Expect(s.Draw(blank([]Cell{{Position{2, 1}, 'x'}}))).To(Succeed())
		Expect(runeAt(2, 1)).To(Equal(' '))
	})

	It("refuses to move outside the screen", func() {
		Expect(screen.MoveTo(20, 0)).NotTo(Succeed())
		Expect(screen.MoveTo(0, 5)).NotTo(Succeed())
	})

	It("hides and shows the cursor", func() {
		Expect(screen.ShowCursor(false)).To(Succeed())
		_, _, visible := sim.GetCursor()
		Expect(visible).To(BeFalse())
		Expect(screen.CursorVisible()).To(BeFalse())

		Expect(screen.ShowCursor(true)).To(Succeed())
		_, _, visible = sim.GetCursor()
		Expect(visible).To(BeTrue())
	})
})
