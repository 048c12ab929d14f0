package geo

import (
	"sync"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/s2"
)

var _ = Describe("MultiPolygon", func() {
	var subject *MultiPolygon

	BeforeEach(func() {
		subject = squareWithHole()
	})

	It("should wrap single rings", func() {
		m := ForRing(unitSquare())
		Expect(m.Outers()).To(Equal([]Ring{unitSquare()}))
		Expect(m.Inners()).To(BeEmpty())
		Expect(m.InnersOf(unitSquare())).To(BeEmpty())
		Expect(m.NumOuters()).To(Equal(1))
		Expect(m.NumInners()).To(Equal(0))
		Expect(m.IsEmpty()).To(BeFalse())
		Expect(New(nil).IsEmpty()).To(BeTrue())
	})

	It("should expose rings", func() {
		Expect(subject.Outers()).To(Equal([]Ring{unitSquare()}))
		Expect(subject.Inners()).To(Equal([]Ring{centerHole()}))
		Expect(subject.InnersOf(unitSquare())).To(Equal([]Ring{centerHole()}))
		Expect(subject.InnersOf(centerHole())).To(BeEmpty())
		Expect(subject.Rings().Keys()).To(Equal([]Ring{unitSquare()}))
	})

	It("should not expose internal state", func() {
		subject.InnersOf(unitSquare())[0] = square(2, 2, 3, 3)
		subject.Outers()[0] = square(2, 2, 3, 3)
		subject.Inners()[0] = square(2, 2, 3, 3)

		Expect(subject.InnersOf(unitSquare())).To(Equal([]Ring{centerHole()}))
		Expect(subject.Outers()).To(Equal([]Ring{unitSquare()}))
		Expect(subject.ContainsPoint(pt(0.5, 0.5))).To(BeFalse())
		Expect(subject.Bounds()).To(Equal(unitSquare().Bounds()))
	})

	It("should calculate surface", func() {
		Expect(subject.Surface()).To(BeNumerically("~", 0.75, 1e-12))
		Expect(ForRing(unitSquare()).Surface()).To(BeNumerically("~", 1.0, 1e-12))
		Expect(ForRing(colorado()).Surface()).To(BeNumerically("~", colorado().Area(), 1e-12))
		Expect(New(nil).Surface()).To(BeZero())

		// holes are subtracted globally, regardless of their outer
		rings := NewRingMap()
		rings.Put(square(0, 0, 2, 2), nil)
		rings.Put(square(5, 5, 6, 6), []Ring{square(0.5, 0.5, 1, 1), square(5.5, 5.5, 6, 6)})
		Expect(New(rings).Surface()).To(BeNumerically("~", 4.5, 1e-12))
	})

	It("should calculate bounds", func() {
		Expect(subject.Bounds()).To(Equal(r2.RectFromPoints(pt(0, 0), pt(1, 1))))
		Expect(New(nil).Bounds().IsEmpty()).To(BeTrue())

		// holes contribute, even when they reach beyond their outer
		rings := NewRingMap()
		rings.Put(unitSquare(), []Ring{square(0.5, 0.5, 3, 2)})
		Expect(New(rings).Bounds()).To(Equal(r2.RectFromPoints(pt(0, 0), pt(3, 2))))
	})

	It("should memoize bounds", func() {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = subject.Bounds()
			}()
		}
		wg.Wait()

		Expect(subject.bounds.Load()).NotTo(BeNil())
		Expect(subject.Bounds()).To(Equal(*subject.bounds.Load()))
	})

	DescribeTable("should contain points",
		func(x, y float64, exp bool) {
			Expect(subject.ContainsPoint(pt(x, y))).To(Equal(exp))
		},

		Entry("inside the hole", 0.5, 0.5, false),
		Entry("on the hole boundary", 0.25, 0.5, false),
		Entry("between outer and hole", 0.1, 0.1, true),
		Entry("on the outer boundary", 0.0, 0.5, true),
		Entry("outside", 1.5, 0.5, false),
		Entry("far outside", -100.0, 100.0, false),
	)

	It("should apply holes to all outers", func() {
		rings := NewRingMap()
		rings.Put(square(0, 0, 2, 2), nil)
		rings.Put(square(5, 5, 6, 6), []Ring{square(0.5, 0.5, 1, 1)})
		m := New(rings)

		Expect(m.ContainsPoint(pt(0.75, 0.75))).To(BeFalse())
		Expect(m.ContainsPoint(pt(1.5, 1.5))).To(BeTrue())
		Expect(m.ContainsPoint(pt(5.5, 5.5))).To(BeTrue())
	})

	It("should never contain points outside the bounds", func() {
		rect := subject.Bounds()
		for _, p := range []r2.Point{
			pt(rect.X.Lo-1e-9, 0.5),
			pt(rect.X.Hi+1e-9, 0.5),
			pt(0.5, rect.Y.Lo-1e-9),
			pt(0.5, rect.Y.Hi+1e-9),
		} {
			Expect(subject.ContainsPoint(p)).To(BeFalse(), "%v", p)
		}
	})

	It("should check overlaps with polylines", func() {
		Expect(subject.Overlaps(Polyline{pt(0.1, 0.1), pt(5, 5)})).To(BeTrue())
		Expect(subject.Overlaps(Polyline{pt(0.5, 0.5), pt(0.6, 0.6)})).To(BeFalse())
		Expect(subject.Overlaps(Polyline{pt(2, 2), pt(3, 3)})).To(BeFalse())
		Expect(subject.Overlaps(nil)).To(BeFalse())
	})

	It("should check containment of polylines", func() {
		Expect(subject.ContainsPolyline(Polyline{pt(0.1, 0.1), pt(0.9, 0.1)})).To(BeTrue())
		Expect(subject.ContainsPolyline(Polyline{pt(0.1, 0.1), pt(0.9, 0.9)})).To(BeFalse())
		Expect(subject.ContainsPolyline(Polyline{pt(0.5, 0.5), pt(0.6, 0.6)})).To(BeFalse())
		Expect(subject.ContainsPolyline(Polyline{pt(0.1, 0.1), pt(1.5, 0.1)})).To(BeFalse())
		Expect(ForRing(unitSquare()).ContainsPolyline(Polyline{pt(0.1, 0.1), pt(0.9, 0.9)})).To(BeTrue())
	})

	Describe("combining", func() {
		var a, b *MultiPolygon
		var h1, h2 Ring

		BeforeEach(func() {
			h1 = square(0.1, 0.1, 0.2, 0.2)
			h2 = square(0.5, 0.5, 0.6, 0.6)

			ra := NewRingMap()
			ra.Put(unitSquare(), []Ring{h1})
			a = New(ra)

			rb := NewRingMap()
			rb.Put(unitSquare(), []Ring{h2})
			rb.Put(square(5, 5, 6, 6), nil)
			b = New(rb)
		})

		It("should merge", func() {
			m := a.Merge(b)
			Expect(m.Outers()).To(Equal([]Ring{unitSquare(), square(5, 5, 6, 6)}))
			Expect(m.InnersOf(unitSquare())).To(Equal([]Ring{h1, h2}))
			Expect(m.InnersOf(square(5, 5, 6, 6))).To(BeEmpty())

			Expect(b.Merge(a).InnersOf(unitSquare())).To(ConsistOf(h1, h2))
		})

		It("should concatenate", func() {
			m := a.Concatenate(b)
			Expect(m.Outers()).To(Equal([]Ring{unitSquare(), square(5, 5, 6, 6)}))
			Expect(m.InnersOf(unitSquare())).To(Equal([]Ring{h2}))

			Expect(b.Concatenate(a).InnersOf(unitSquare())).To(Equal([]Ring{h1}))
		})

		It("should not modify operands", func() {
			_ = a.Merge(b)
			_ = a.Concatenate(b)
			_ = a.Merge(a).Merge(a)

			Expect(a.InnersOf(unitSquare())).To(Equal([]Ring{h1}))
			Expect(b.InnersOf(unitSquare())).To(Equal([]Ring{h2}))
			Expect(a.NumOuters()).To(Equal(1))
			Expect(b.NumOuters()).To(Equal(2))
		})

		It("should reset bounds of combined results", func() {
			Expect(a.Bounds()).To(Equal(r2.RectFromPoints(pt(0, 0), pt(1, 1))))
			Expect(a.Merge(b).Bounds()).To(Equal(r2.RectFromPoints(pt(0, 0), pt(6, 6))))
		})
	})

	Describe("equality", func() {
		It("should be reflexive and symmetric", func() {
			other := squareWithHole()
			Expect(subject.Equal(subject)).To(BeTrue())
			Expect(subject.Equal(other)).To(BeTrue())
			Expect(other.Equal(subject)).To(BeTrue())
			Expect(subject.Hash()).To(Equal(other.Hash()))
		})

		It("should ignore hole order", func() {
			h1, h2 := square(0.1, 0.1, 0.2, 0.2), square(0.5, 0.5, 0.6, 0.6)

			ra := NewRingMap()
			ra.Put(unitSquare(), []Ring{h1, h2})
			rb := NewRingMap()
			rb.Put(unitSquare(), []Ring{h2, h1})

			Expect(New(ra).Equal(New(rb))).To(BeTrue())
			Expect(New(ra).Hash()).To(Equal(New(rb).Hash()))
		})

		It("should ignore outer order", func() {
			ra := NewRingMap()
			ra.Put(unitSquare(), nil)
			ra.Put(colorado(), nil)
			rb := NewRingMap()
			rb.Put(colorado(), nil)
			rb.Put(unitSquare(), nil)

			Expect(New(ra).Equal(New(rb))).To(BeTrue())
		})

		It("should compare holes by containment", func() {
			h1, h2 := square(0.1, 0.1, 0.2, 0.2), square(0.5, 0.5, 0.6, 0.6)

			ra := NewRingMap()
			ra.Put(unitSquare(), []Ring{h1, h1, h2})
			rb := NewRingMap()
			rb.Put(unitSquare(), []Ring{h1, h2, h2})

			Expect(New(ra).Equal(New(rb))).To(BeTrue())
		})

		It("should detect differences", func() {
			Expect(subject.Equal(ForRing(unitSquare()))).To(BeFalse())
			Expect(ForRing(unitSquare()).Equal(subject)).To(BeFalse())
			Expect(subject.Equal(ForRing(colorado()))).To(BeFalse())
			Expect(subject.Equal(ForRing(unitSquare()).Merge(ForRing(colorado())))).To(BeFalse())

			rings := NewRingMap()
			rings.Put(unitSquare(), []Ring{square(0.2, 0.2, 0.7, 0.7)})
			Expect(subject.Equal(New(rings))).To(BeFalse())
			Expect(subject.Equal(nil)).To(BeFalse())
		})
	})

	Describe("iteration", func() {
		var m *MultiPolygon
		var h1, h2, h3 Ring

		BeforeEach(func() {
			h1, h2, h3 = square(0.1, 0.1, 0.2, 0.2), square(0.5, 0.5, 0.6, 0.6), square(5.1, 5.1, 5.2, 5.2)

			rings := NewRingMap()
			rings.Put(unitSquare(), []Ring{h1, h2})
			rings.Put(colorado(), nil)
			rings.Put(square(5, 5, 6, 6), []Ring{h3})
			m = New(rings)
		})

		It("should iterate outers first", func() {
			var rings []Ring
			var roles []Role
			for it := m.Iterate(); it.Next(); {
				rings = append(rings, it.Ring())
				roles = append(roles, it.Role())
			}

			Expect(rings).To(Equal([]Ring{unitSquare(), colorado(), square(5, 5, 6, 6), h1, h2, h3}))
			Expect(roles).To(Equal([]Role{RoleOuter, RoleOuter, RoleOuter, RoleInner, RoleInner, RoleInner}))
		})

		It("should be restartable", func() {
			it := m.Iterate()
			for it.Next() {
			}
			Expect(it.Next()).To(BeFalse())
			Expect(it.Ring()).To(BeNil())

			it.Reset()
			Expect(it.Next()).To(BeTrue())
			Expect(it.Ring()).To(Equal(unitSquare()))

			Expect(m.Iterate().Next()).To(BeTrue())
		})

		It("should iterate empty", func() {
			Expect(New(nil).Iterate().Next()).To(BeFalse())
		})

		It("should project features", func() {
			features := m.Features()
			Expect(features).To(HaveLen(6))
			Expect(features[0]).To(Equal(Feature{Ring: unitSquare(), Role: RoleOuter, Tags: map[string]string{}}))
			Expect(features[5]).To(Equal(Feature{Ring: h3, Role: RoleInner, Tags: map[string]string{}}))
		})
	})

	It("should format", func() {
		Expect(subject.CompactString()).To(Equal("0,0:1,0:1,1:0,1&0.25,0.25:0.75,0.25:0.75,0.75:0.25,0.75"))
		Expect(subject.Merge(ForRing(square(2, 2, 3, 3))).CompactString()).To(Equal("0,0:1,0:1,1:0,1&0.25,0.25:0.75,0.25:0.75,0.75:0.25,0.75#2,2:3,2:3,3:2,3"))
		Expect(subject.String()).To(Equal("Outer: 0,0:1,0:1,1:0,1\n\t\tInner: 0.25,0.25:0.75,0.25:0.75,0.75:0.25,0.75"))
		Expect(ForRing(unitSquare()).ReadableString()).To(Equal("Outer: 0,0:1,0:1,1:0,1\n\t\t"))
		Expect(subject.SimpleString()).To(Equal(subject.CompactString()))

		var long Ring
		for i := 0; i < 100; i++ {
			long = append(long, pt(float64(i), float64(i%2)))
		}
		s := ForRing(long).SimpleString()
		Expect(s).To(HaveLen(203))
		Expect(s).To(HaveSuffix("..."))
	})

	It("should cover with cells", func() {
		cells := ForRing(colorado()).Cells(6)
		Expect(cells).NotTo(BeEmpty())
		Expect(cells.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(39, -105.5)))).To(BeTrue())
		Expect(cells.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(0, 0)))).To(BeFalse())

		Expect(ForRing(colorado()).Cells(6)).To(Equal(ForRing(colorado().Reverse()).Cells(6)))
		Expect(New(nil).Cells(6)).To(BeEmpty())
	})
})
