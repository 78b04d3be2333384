package digitalrain

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Direction", func() {
	It("parses every direction name", func() {
		for _, name := range []string{"down", "up", "left", "right"} {
			d, err := ParseDirection(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.String()).To(Equal(name))
		}
	})

	It("rejects unknown names and lists the valid ones", func() {
		_, err := ParseDirection("sideways")
		Expect(err).To(MatchError(ContainSubstring("sideways")))
		Expect(err.Error()).To(ContainSubstring("down, up, left, right"))

		_, err = ParseDirection("Down")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Bounds", func() {
	b := Bounds{Width: 80, Height: 24}

	DescribeTable("visibility",
		func(p Position, visible bool) {
			Expect(b.Visible(p)).To(Equal(visible))
		},
		Entry("origin", Position{0, 0}, true),
		Entry("last cell", Position{79, 23}, true),
		Entry("column at the bound", Position{80, 0}, false),
		Entry("row at the bound", Position{0, 24}, false),
		Entry("both past", Position{100, 100}, false),
		Entry("negative", Position{-1, 3}, false),
	)
})

var _ = Describe("Steps", func() {
	b := Bounds{Width: 80, Height: 24}

	DescribeTable("distance to the far edge",
		func(d Direction, origin Position, expected int) {
			Expect(Steps(d, origin, b)).To(Equal(expected))
		},
		Entry("down from the top", Down, Position{5, 0}, 24),
		Entry("down from the middle", Down, Position{5, 10}, 14),
		Entry("down from the bottom bound", Down, Position{5, 24}, 0),
		Entry("down from past the bound", Down, Position{5, 30}, 0),
		Entry("up from the bottom bound", Up, Position{5, 24}, 25),
		Entry("up from the top", Up, Position{5, 0}, 1),
		Entry("left from the right bound", Left, Position{80, 3}, 81),
		Entry("right from the left edge", Right, Position{0, 3}, 80),
		Entry("right from past the bound", Right, Position{90, 3}, 0),
	)

	It("is never negative and never moves past the screen", func() {
		small := Bounds{Width: 6, Height: 4}
		for _, d := range []Direction{Down, Up, Left, Right} {
			for col := -1; col <= small.Width+1; col++ {
				for row := -1; row <= small.Height+1; row++ {
					origin := Position{col, row}
					steps := Steps(d, origin, small)
					Expect(steps).To(BeNumerically(">=", 0))
					for step := 0; step < steps+3; step++ {
						p, _ := Offset(d, origin, step)
						// Only the travel axis moves; the other keeps the origin's value.
						switch d {
						case Up:
							Expect(p.Row).To(BeNumerically(">=", 0))
							Expect(p.Col).To(Equal(col))
						case Left:
							Expect(p.Col).To(BeNumerically(">=", 0))
							Expect(p.Row).To(Equal(row))
						case Down:
							Expect(p.Row).To(Equal(row + step))
							Expect(p.Col).To(Equal(col))
						case Right:
							Expect(p.Col).To(Equal(col + step))
							Expect(p.Row).To(Equal(row))
						}
					}
				}
			}
		}
	})
})

var _ = Describe("Offset", func() {
	It("adds along the axis going down or right", func() {
		p, ok := Offset(Down, Position{5, 2}, 3)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(Position{5, 5}))

		p, ok = Offset(Right, Position{5, 2}, 3)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(Position{8, 2}))
	})

	It("subtracts going up or left", func() {
		p, ok := Offset(Up, Position{5, 24}, 4)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(Position{5, 20}))

		p, ok = Offset(Left, Position{5, 24}, 5)
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(Position{0, 24}))
	})

	It("clamps at zero and flags the saturation", func() {
		p, ok := Offset(Up, Position{5, 3}, 10)
		Expect(ok).To(BeFalse())
		Expect(p).To(Equal(Position{5, 0}))

		p, ok = Offset(Left, Position{2, 7}, 3)
		Expect(ok).To(BeFalse())
		Expect(p).To(Equal(Position{0, 7}))
	})
})
